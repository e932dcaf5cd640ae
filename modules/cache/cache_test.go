// Copyright 2017 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU(t *testing.T) {
	c, err := NewLRU[int64, string]("test", 2)
	require.NoError(t, err)

	calls := 0
	load := func(v string) func() (string, error) {
		return func() (string, error) {
			calls++
			return v, nil
		}
	}

	v, err := c.Get(1, load("one"))
	require.NoError(t, err)
	assert.Equal(t, "one", v)
	v, _ = c.Get(1, load("other"))
	assert.Equal(t, "one", v)
	assert.Equal(t, 1, calls)

	_, _ = c.Get(2, load("two"))
	_, _ = c.Get(3, load("three"))
	assert.Equal(t, 2, c.Len())
	// 1 was the least recently used
	v, _ = c.Get(1, load("again"))
	assert.Equal(t, "again", v)

	_, err = c.Get(4, func() (string, error) { return "", errors.New("boom") })
	assert.Error(t, err)
	_, err = c.Get(4, load("four"))
	assert.NoError(t, err)

	c.Remove(4)
	c.Purge()
	assert.Zero(t, c.Len())

	_, err = NewLRU[int64, string]("bad", 0)
	assert.Error(t, err)
}

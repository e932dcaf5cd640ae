// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package test

import (
	"testing"
	"time"

	"code.mojo.dev/mojo/modules/timeutil"

	"github.com/stretchr/testify/assert"
)

func TestMockVariableValue(t *testing.T) {
	v := 1
	reset := MockVariableValue(&v, 2)
	assert.Equal(t, 2, v)
	reset()
	assert.Equal(t, 1, v)
}

func TestMockTime(t *testing.T) {
	at := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	reset := MockTime(at)
	assert.True(t, timeutil.Now().Equal(at))
	reset()
	assert.False(t, timeutil.Now().Equal(at))
}

// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package json

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalIndent(t *testing.T) {
	b, err := MarshalIndent(map[string]int{"a": 1}, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(b))
}

func TestDecoder(t *testing.T) {
	var v struct {
		ID   int64   `json:"id"`
		IDs  []int64 `json:"ids"`
		Text string  `json:"text"`
	}
	require.NoError(t, NewDecoder(bytes.NewBufferString(`{"id": 3, "ids": [1, 2], "text": "hi"}`)).Decode(&v))
	assert.EqualValues(t, 3, v.ID)
	assert.Equal(t, []int64{1, 2}, v.IDs)
	assert.Equal(t, "hi", v.Text)
}

// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFromString(t *testing.T) {
	assert.Equal(t, DEBUG, LevelFromString("DEBUG"))
	assert.Equal(t, WARN, LevelFromString("warning"))
	assert.Equal(t, INFO, LevelFromString("whatever"))
	assert.Equal(t, "none", NONE.String())
}

func TestLevelJSON(t *testing.T) {
	b, err := ERROR.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"error"`, string(b))

	var l Level
	require.NoError(t, l.UnmarshalJSON([]byte(`"trace"`)))
	assert.Equal(t, TRACE, l)
	require.NoError(t, l.UnmarshalJSON([]byte(`4`)))
	assert.Equal(t, WARN, l)
}

func TestLoggerFileMode(t *testing.T) {
	file := filepath.Join(t.TempDir(), "mojo.log")
	l := NewLoggerWithMode("test", WriterMode{Level: INFO, Mode: "file", FileName: file})

	assert.False(t, l.LevelEnabled(DEBUG))
	assert.True(t, l.LevelEnabled(ERROR))

	l.Debug("hidden %d", 1)
	l.Info("item %d estimated", 42)
	l.Close()

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), "item 42 estimated")
	assert.NotContains(t, string(content), "hidden")
}

func TestLoggerNone(t *testing.T) {
	l := NewLoggerWithMode("quiet", WriterMode{Level: NONE})
	assert.False(t, l.LevelEnabled(FATAL))
	assert.False(t, l.LevelEnabled(ERROR))
}

// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"sync"
)

const DEFAULT = "default"

var (
	loggersMu   sync.Mutex
	loggers     = map[string]*LoggerImpl{}
	defaultMode = WriterMode{Level: INFO, Mode: "console"}
)

// GetLogger returns the logger with the given name, creating it with the current mode when needed
func GetLogger(name string) *LoggerImpl {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	if l, ok := loggers[name]; ok {
		return l
	}
	l := NewLoggerWithMode(name, defaultMode)
	loggers[name] = l
	return l
}

// Init applies the mode to every existing and future logger
func Init(mode WriterMode) {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	defaultMode = mode
	for _, l := range loggers {
		l.SetMode(mode)
	}
}

// Close flushes all loggers
func Close() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	for _, l := range loggers {
		l.Close()
	}
}

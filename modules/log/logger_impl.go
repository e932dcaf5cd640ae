// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// WriterMode selects the sink of a logger
type WriterMode struct {
	Level    Level
	Mode     string // console or file
	FileName string
}

// LoggerImpl is a named logger writing through zap
type LoggerImpl struct {
	name string

	mu    sync.RWMutex
	level Level
	sugar *zap.SugaredLogger
}

var _ Logger = (*LoggerImpl)(nil)

func buildZap(name string, mode WriterMode) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(mode.Level.zapLevel())
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil
	switch mode.Mode {
	case "file":
		if mode.FileName == "" {
			return nil, fmt.Errorf("log file mode requires a file name")
		}
		cfg.OutputPaths = []string{mode.FileName}
	default:
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.OutputPaths = []string{"stderr"}
	}
	l, err := cfg.Build(zap.AddCallerSkip(2))
	if err != nil {
		return nil, err
	}
	return l.Named(name).Sugar(), nil
}

// NewLoggerWithMode creates a logger, falling back to a no-op sink when zap cannot be built
func NewLoggerWithMode(name string, mode WriterMode) *LoggerImpl {
	l := &LoggerImpl{name: name}
	l.SetMode(mode)
	return l
}

// SetMode replaces the sink and level of the logger
func (l *LoggerImpl) SetMode(mode WriterMode) {
	sugar, err := buildZap(l.name, mode)
	if err != nil {
		sugar = zap.NewNop().Sugar()
	}
	l.mu.Lock()
	old := l.sugar
	l.sugar = sugar
	l.level = mode.Level
	l.mu.Unlock()
	if old != nil {
		_ = old.Sync()
	}
}

// Close flushes buffered output
func (l *LoggerImpl) Close() {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.sugar != nil {
		_ = l.sugar.Sync()
	}
}

// GetLevel returns the minimal level of this logger
func (l *LoggerImpl) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// LevelEnabled checks if the level is enabled
func (l *LoggerImpl) LevelEnabled(level Level) bool {
	cur := l.GetLevel()
	return cur != NONE && level >= cur
}

// Log prepares the message and sends it to zap, skip is the number of extra frames to hide
func (l *LoggerImpl) Log(skip int, level Level, format string, v ...any) {
	if !l.LevelEnabled(level) {
		return
	}
	l.mu.RLock()
	sugar := l.sugar
	l.mu.RUnlock()
	if skip > 0 {
		sugar = sugar.WithOptions(zap.AddCallerSkip(skip))
	}
	msg := format
	if len(v) > 0 {
		msg = fmt.Sprintf(format, v...)
	}
	switch level {
	case TRACE, DEBUG:
		sugar.Debug(msg)
	case INFO:
		sugar.Info(msg)
	case WARN:
		sugar.Warn(msg)
	case ERROR:
		sugar.Error(msg)
	case FATAL:
		sugar.Fatal(msg)
	}
}

func (l *LoggerImpl) Trace(format string, v ...any) {
	l.Log(0, TRACE, format, v...)
}

func (l *LoggerImpl) Debug(format string, v ...any) {
	l.Log(0, DEBUG, format, v...)
}

func (l *LoggerImpl) Info(format string, v ...any) {
	l.Log(0, INFO, format, v...)
}

func (l *LoggerImpl) Warn(format string, v ...any) {
	l.Log(0, WARN, format, v...)
}

func (l *LoggerImpl) Error(format string, v ...any) {
	l.Log(0, ERROR, format, v...)
}

func (l *LoggerImpl) Critical(format string, v ...any) {
	l.Log(0, CRITICAL, format, v...)
}

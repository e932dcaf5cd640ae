// Copyright 2014 The Gogs Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"os"
)

func GetLevel() Level {
	return GetLogger(DEFAULT).GetLevel()
}

func IsTrace() bool {
	return GetLevel() <= TRACE
}

func IsDebug() bool {
	return GetLevel() <= DEBUG
}

func Trace(format string, v ...any) {
	GetLogger(DEFAULT).Log(1, TRACE, format, v...)
}

func Debug(format string, v ...any) {
	GetLogger(DEFAULT).Log(1, DEBUG, format, v...)
}

func Info(format string, v ...any) {
	GetLogger(DEFAULT).Log(1, INFO, format, v...)
}

func Warn(format string, v ...any) {
	GetLogger(DEFAULT).Log(1, WARN, format, v...)
}

func Error(format string, v ...any) {
	GetLogger(DEFAULT).Log(1, ERROR, format, v...)
}

func Critical(format string, v ...any) {
	GetLogger(DEFAULT).Log(1, CRITICAL, format, v...)
}

// Fatal records fatal log and exit process
func Fatal(format string, v ...any) {
	GetLogger(DEFAULT).Log(1, ERROR, format, v...)
	Close()
	os.Exit(1)
}

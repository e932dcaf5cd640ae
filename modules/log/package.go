// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package log provides logging capabilities for mojo.
// Concepts:
//
// * Logger: a Logger provides leveled, printf-style logging functions
//
// * LoggerImpl: the zap backed implementation, one per logger name
//   - "default" is used by the package level functions (log.Info, ...)
//   - "xorm" receives the SQL log through models/db's bridge
//
// Call graph:
// -> log.Info()
// -> LoggerImpl.Log()
// -> zap.SugaredLogger writes to the configured console or file sink
package log

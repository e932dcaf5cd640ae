// Copyright 2017 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package test

import (
	"time"

	"code.mojo.dev/mojo/modules/timeutil"
)

// MockVariableValue sets a variable to a value for the duration of a test, the returned func restores it
func MockVariableValue[T any](p *T, v ...T) (reset func()) {
	old := *p
	if len(v) > 0 {
		*p = v[0]
	}
	return func() { *p = old }
}

// MockTime freezes timeutil's clock at now, the returned func releases it
func MockTime(now time.Time) (reset func()) {
	timeutil.Set(now)
	return timeutil.Unset
}

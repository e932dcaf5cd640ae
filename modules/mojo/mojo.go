// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package mojo computes the derived state of items, issue phases, issues,
// projects and releases from their raw facts.
//
// Every function here is pure: it takes an in-memory snapshot of the
// entity subgraph plus the evaluation instant and returns plain values.
// Nothing is stored; the models package loads snapshots and calls in.
package mojo

import (
	"time"

	"code.mojo.dev/mojo/modules/timeutil"
)

// Config carries the service level windows used by the response time rules
type Config struct {
	// ResponseTimeSLA is how long an item may wait for its estimate
	ResponseTimeSLA time.Duration
	// GraceWindow is the secondary window measured from the same instant
	GraceWindow time.Duration
	// IssueResponseTimeSLA is how long an issue may stay in triage
	IssueResponseTimeSLA time.Duration
	// Location decides which calendar day "now" falls on
	Location *time.Location
}

// DefaultConfig returns the windows used when nothing is configured
func DefaultConfig() Config {
	return Config{
		ResponseTimeSLA:      time.Hour,
		GraceWindow:          48 * time.Hour,
		IssueResponseTimeSLA: 48 * time.Hour,
		Location:             time.UTC,
	}
}

// Today returns the calendar day of now
func (c Config) Today(now time.Time) timeutil.Date {
	return timeutil.Today(now, c.Location)
}

// hoursUntil returns the whole hours from now until ts+window, negative once passed.
// now is cut to the second resolution of ts.
func hoursUntil(ts timeutil.TimeStamp, window time.Duration, now time.Time) int64 {
	deadline := time.Unix(int64(ts), 0).Add(window)
	return timeutil.HoursFromDuration(deadline.Sub(now.Truncate(time.Second)))
}

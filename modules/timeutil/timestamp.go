// Copyright 2017 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package timeutil

import (
	"time"

	"code.mojo.dev/mojo/modules/setting"
)

// TimeStamp defines a timestamp, zero means "not set"
type TimeStamp int64

var (
	// mock is NOT concurrency-safe!!
	mock time.Time

	// Used for IsZero, to check if timestamp is the zero time instant.
	timeZeroUnix = time.Time{}.Unix()
)

// Set sets the time to a mocked time.Time
func Set(now time.Time) {
	mock = now
}

// Unset will unset the mocked time.Time
func Unset() {
	mock = time.Time{}
}

// Now returns the current instant, or the mocked one when set
func Now() time.Time {
	if !mock.IsZero() {
		return mock
	}
	return time.Now()
}

// TimeStampNow returns now int64
func TimeStampNow() TimeStamp {
	return TimeStamp(Now().Unix())
}

// TimeStampOf converts a time.Time into a TimeStamp, the zero time maps to 0
func TimeStampOf(t time.Time) TimeStamp {
	if t.IsZero() {
		return 0
	}
	return TimeStamp(t.Unix())
}

// Add adds seconds and return sum
func (ts TimeStamp) Add(seconds int64) TimeStamp {
	return ts + TimeStamp(seconds)
}

// AddDuration adds time.Duration and return sum
func (ts TimeStamp) AddDuration(interval time.Duration) TimeStamp {
	return ts + TimeStamp(interval/time.Second)
}

// AsTime convert timestamp as time.Time in the configured location
func (ts TimeStamp) AsTime() time.Time {
	return ts.AsTimeInLocation(setting.DefaultUILocation)
}

// AsTimeInLocation convert timestamp as time.Time in Local locale
func (ts TimeStamp) AsTimeInLocation(loc *time.Location) time.Time {
	return time.Unix(int64(ts), 0).In(loc)
}

// AsTimePtr returns nil for an unset timestamp
func (ts TimeStamp) AsTimePtr() *time.Time {
	if ts.IsZero() {
		return nil
	}
	tm := ts.AsTime()
	return &tm
}

// Format formats timestamp as given format
func (ts TimeStamp) Format(f string) string {
	return ts.AsTime().Format(f)
}

// FormatLong formats as RFC1123Z
func (ts TimeStamp) FormatLong() string {
	return ts.Format(time.RFC1123Z)
}

// IsZero is zero time
func (ts TimeStamp) IsZero() bool {
	return int64(ts) == 0 || int64(ts) == timeZeroUnix
}

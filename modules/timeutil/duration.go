// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package timeutil

import (
	"fmt"
	"time"

	"code.mojo.dev/mojo/modules/util"
)

// ErrInvalidRange represents a date range whose end lies before its start
type ErrInvalidRange struct {
	Start Date
	End   Date
}

// IsErrInvalidRange checks if an error is a ErrInvalidRange.
func IsErrInvalidRange(err error) bool {
	_, ok := err.(ErrInvalidRange)
	return ok
}

func (err ErrInvalidRange) Error() string {
	return fmt.Sprintf("end date is before start date [start: %s, end: %s]", err.Start, err.End)
}

func (err ErrInvalidRange) Unwrap() error {
	return util.ErrInvalidArgument
}

// HoursFromDuration converts a signed delta into whole hours, rounding towards
// negative infinity: 90m is 1, -30m is -1.
func HoursFromDuration(d time.Duration) int64 {
	h := d / time.Hour
	if d%time.Hour < 0 {
		h--
	}
	return int64(h)
}

// DaysInclusive counts the days of [start, end], both ends included
func DaysInclusive(start, end Date) (int64, error) {
	if end.Before(start) {
		return 0, ErrInvalidRange{Start: start, End: end}
	}
	return DaysLeft(start, end), nil
}

// DaysLeft is DaysInclusive without the range check, it goes to zero and
// below once end has passed.
func DaysLeft(from, end Date) int64 {
	return int64(end-from) + 1
}

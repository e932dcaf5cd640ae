// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package timeutil

import (
	"time"
)

// DateLayout is the textual form of a Date
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Date is a calendar day counted from 1970-01-01, zero means "not set".
// It is stored as a plain integer column, the same way TimeStamp is.
type Date int64

// DateOf returns the calendar day of t in t's own location
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay)
}

// NewDate returns the given calendar day
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDate parses a YYYY-MM-DD string
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return 0, err
	}
	return DateOf(t), nil
}

// Today returns the calendar day of now as seen in loc
func Today(now time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(now.In(loc))
}

// IsZero reports whether the date is unset
func (d Date) IsZero() bool {
	return d == 0
}

// AsTime returns midnight UTC of the day
func (d Date) AsTime() time.Time {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC()
}

// AddDays returns the date n days later (or earlier for negative n)
func (d Date) AddDays(n int64) Date {
	return d + Date(n)
}

func (d Date) Before(o Date) bool { return d < o }

func (d Date) After(o Date) bool { return d > o }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.AsTime().Format(DateLayout)
}

// MarshalText renders the date as YYYY-MM-DD
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses YYYY-MM-DD, an empty string is the unset date
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = 0
		return nil
	}
	v, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

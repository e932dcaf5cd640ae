// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package mojo

import (
	"code.mojo.dev/mojo/modules/optional"
	"code.mojo.dev/mojo/modules/timeutil"
)

// ReportSnapshot is one day of logged work on an item
type ReportSnapshot struct {
	Date  timeutil.Date
	Hours float64
	Note  string
}

// IsSubmitted reports whether the report carries a note, a report without one is a placeholder
func (r ReportSnapshot) IsSubmitted() bool {
	return r.Note != ""
}

// HoursWorked sums the logged hours, None means nothing was logged at all
func HoursWorked(reports []ReportSnapshot) optional.Option[float64] {
	if len(reports) == 0 {
		return optional.None[float64]()
	}
	var sum float64
	for _, r := range reports {
		sum += r.Hours
	}
	return optional.Some(sum)
}

// AverageDailyHours is the burn rate so far, hours per logged day
func AverageDailyHours(reports []ReportSnapshot) optional.Option[float64] {
	worked := HoursWorked(reports)
	if !worked.Has() {
		return worked
	}
	return optional.Some(worked.Value() / float64(len(reports)))
}

// PhaseHoursWorked sums what every item of a phase logged, items without
// reports contribute nothing and a phase where no item logged is None.
func PhaseHoursWorked(items []ItemSnapshot) optional.Option[float64] {
	var sum float64
	found := false
	for _, it := range items {
		if worked := HoursWorked(it.Reports); worked.Has() {
			sum += worked.Value()
			found = true
		}
	}
	if !found {
		return optional.None[float64]()
	}
	return optional.Some(sum)
}

// latestReport returns the report with the greatest date
func latestReport(reports []ReportSnapshot) ReportSnapshot {
	latest := reports[0]
	for _, r := range reports[1:] {
		if r.Date.After(latest.Date) {
			latest = r
		}
	}
	return latest
}

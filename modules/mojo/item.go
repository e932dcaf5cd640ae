// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package mojo

import (
	"time"

	"code.mojo.dev/mojo/modules/optional"
	"code.mojo.dev/mojo/modules/timeutil"
)

// ItemSnapshot is an item with all of its daily reports
type ItemSnapshot struct {
	ID                    int64
	IssuePhaseID          int64
	MemberID              int64
	StartDate             timeutil.Date
	EndDate               timeutil.Date
	EstimatedHours        optional.Option[float64]
	NeedEstimateTimestamp timeutil.TimeStamp
	IsDone                optional.Option[bool]
	Reports               []ReportSnapshot
}

// IsEstimated reports whether the item has an hours estimate
func (it *ItemSnapshot) IsEstimated() bool {
	return it.EstimatedHours.Has()
}

// ItemState is everything derived from an item
type ItemState struct {
	ID                 int64
	Status             ItemStatus
	Perspective        Perspective
	HoursWorked        optional.Option[float64]
	ResponseTime       optional.Option[int64]
	GracePeriod        optional.Option[int64]
	RemainingHours     optional.Option[float64]
	Progress           optional.Option[float64]
	DaysLeftToEstimate optional.Option[int64]
	Boarding           optional.Option[MojoBoarding]
}

// ComputeItem derives the state of an item at now
func ComputeItem(it *ItemSnapshot, now time.Time, cfg Config) ItemState {
	today := cfg.Today(now)
	b := burn{
		estimated: it.EstimatedHours,
		worked:    HoursWorked(it.Reports),
		reports:   len(it.Reports),
		start:     it.StartDate,
		end:       it.EndDate,
	}
	state := ItemState{
		ID:                 it.ID,
		Status:             ComputeItemStatus(it),
		Perspective:        ComputePerspective(it.Reports, today),
		HoursWorked:        b.worked,
		RemainingHours:     b.remaining(),
		Progress:           b.progress(),
		DaysLeftToEstimate: b.daysLeft(today),
		Boarding:           b.boarding(today),
	}
	if !it.NeedEstimateTimestamp.IsZero() {
		state.ResponseTime = optional.Some(hoursUntil(it.NeedEstimateTimestamp, cfg.ResponseTimeSLA, now))
		state.GracePeriod = optional.Some(hoursUntil(it.NeedEstimateTimestamp, cfg.GraceWindow, now))
	}
	return state
}

// ComputeItemStatus is to-do before any report, complete once the logged
// hours reach the estimate and in-progress in between or while unestimated.
func ComputeItemStatus(it *ItemSnapshot) ItemStatus {
	worked := HoursWorked(it.Reports)
	if !worked.Has() {
		return StatusToDo
	}
	if it.EstimatedHours.Has() && worked.Value() >= it.EstimatedHours.Value() {
		return StatusComplete
	}
	return StatusInProgress
}

// ComputePerspective evaluates the rules in order, the first match wins:
// Due when nothing is reported or today's placeholder is pending, Overdue when
// an earlier placeholder is still without a note, Due when the latest report
// lies ahead of today, Submitted otherwise.
func ComputePerspective(reports []ReportSnapshot, today timeutil.Date) Perspective {
	if len(reports) == 0 {
		return PerspectiveDue
	}
	latest := latestReport(reports)
	if !latest.IsSubmitted() && latest.Date == today {
		return PerspectiveDue
	}
	for _, r := range reports {
		if !r.IsSubmitted() && r.Date.Before(today) {
			return PerspectiveOverdue
		}
	}
	if latest.Date.After(today) {
		return PerspectiveDue
	}
	return PerspectiveSubmitted
}

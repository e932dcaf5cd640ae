// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package mojo

import (
	"time"

	"code.mojo.dev/mojo/modules/optional"
	"code.mojo.dev/mojo/modules/timeutil"
)

// PhaseSnapshot is one issue phase with its items
type PhaseSnapshot struct {
	ID      int64
	IssueID int64
	PhaseID int64
	Order   int64
	Items   []ItemSnapshot
}

// PhaseState is the rollup of the items of an issue phase
type PhaseState struct {
	ID             int64
	PhaseID        int64
	Status         ItemStatus
	StartDate      timeutil.Date
	EndDate        timeutil.Date
	EstimatedHours optional.Option[float64]
	HoursWorked    optional.Option[float64]
	RemainingHours optional.Option[float64]
	Progress       optional.Option[float64]
	AllEstimated   bool
	Boarding       optional.Option[MojoBoarding]
	Items          []ItemState
}

// ComputePhase rolls up the items of p at now
func ComputePhase(p *PhaseSnapshot, now time.Time, cfg Config) PhaseState {
	today := cfg.Today(now)
	state := PhaseState{
		ID:           p.ID,
		PhaseID:      p.PhaseID,
		AllEstimated: p.AllEstimated(),
		Items:        make([]ItemState, 0, len(p.Items)),
	}

	var estimated float64
	hasEstimate := false
	reports := 0
	for i := range p.Items {
		it := &p.Items[i]
		state.Items = append(state.Items, ComputeItem(it, now, cfg))
		if !it.StartDate.IsZero() && (state.StartDate.IsZero() || it.StartDate.Before(state.StartDate)) {
			state.StartDate = it.StartDate
		}
		if it.EndDate.After(state.EndDate) {
			state.EndDate = it.EndDate
		}
		if it.EstimatedHours.Has() {
			estimated += it.EstimatedHours.Value()
			hasEstimate = true
		}
		reports += len(it.Reports)
	}
	if hasEstimate {
		state.EstimatedHours = optional.Some(estimated)
	}
	state.HoursWorked = PhaseHoursWorked(p.Items)
	state.Status = rollupStatus(state.Items)

	b := burn{
		estimated: state.EstimatedHours,
		worked:    state.HoursWorked,
		reports:   reports,
		start:     state.StartDate,
		end:       state.EndDate,
	}
	state.RemainingHours = b.remaining()
	state.Progress = b.progress()
	state.Boarding = b.boarding(today)
	return state
}

// AllEstimated reports whether the phase has items and none of them lacks an estimate
func (p *PhaseSnapshot) AllEstimated() bool {
	if len(p.Items) == 0 {
		return false
	}
	for i := range p.Items {
		if !p.Items[i].IsEstimated() {
			return false
		}
	}
	return true
}

// rollupStatus: any in-progress item makes the phase in-progress, all
// complete makes it complete, anything else is to-do.
func rollupStatus(items []ItemState) ItemStatus {
	if len(items) == 0 {
		return StatusToDo
	}
	allComplete := true
	for _, it := range items {
		if it.Status == StatusInProgress {
			return StatusInProgress
		}
		if it.Status != StatusComplete {
			allComplete = false
		}
	}
	if allComplete {
		return StatusComplete
	}
	return StatusToDo
}

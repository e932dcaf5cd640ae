// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package mojo

import (
	"time"

	"code.mojo.dev/mojo/modules/optional"
	"code.mojo.dev/mojo/modules/timeutil"
)

// IssueSnapshot is an issue with its phases, items and reports
type IssueSnapshot struct {
	ID              int64
	ProjectID       int64
	Kind            Kind
	Priority        Priority
	Stage           Stage
	Origin          Origin
	LastMovingTime  timeutil.TimeStamp
	RelatedIssueIDs []int64
	Phases          []PhaseSnapshot
}

// IssueState is everything derived from an issue
type IssueState struct {
	ID            int64
	DueDate       timeutil.Date
	IsDone        bool
	PhaseID       optional.Option[int64]
	Status        IssueStatus
	Boarding      IssueBoarding
	BoardingValue int
	PriorityValue int
	ResponseTime  optional.Option[int64]
	Phases        []PhaseState
}

// ComputeIssue derives the state of an issue at now
func ComputeIssue(issue *IssueSnapshot, now time.Time, cfg Config) IssueState {
	state := IssueState{
		ID:            issue.ID,
		DueDate:       issue.DueDate(),
		IsDone:        issue.IsDone(),
		PriorityValue: issue.Priority.Value(),
		Phases:        make([]PhaseState, 0, len(issue.Phases)),
	}
	for i := range issue.Phases {
		state.Phases = append(state.Phases, ComputePhase(&issue.Phases[i], now, cfg))
	}

	active := issue.activePhase()
	if active >= 0 {
		state.PhaseID = optional.Some(issue.Phases[active].PhaseID)
	}
	switch {
	case state.IsDone:
		state.Status = IssueStatusDone
	case active >= 0:
		state.Status = IssueStatus(state.Phases[active].Status)
	default:
		state.Status = IssueStatusToDo
	}

	state.Boarding = ComputeIssueBoarding(issue.Stage, state.DueDate, cfg.Today(now))
	state.BoardingValue = state.Boarding.Value()

	if !issue.LastMovingTime.IsZero() {
		state.ResponseTime = optional.Some(hoursUntil(issue.LastMovingTime, cfg.IssueResponseTimeSLA, now))
	}
	return state
}

// DueDate is the latest end date over all items, zero when none has one
func (issue *IssueSnapshot) DueDate() timeutil.Date {
	var due timeutil.Date
	for _, p := range issue.Phases {
		for _, it := range p.Items {
			if it.EndDate.After(due) {
				due = it.EndDate
			}
		}
	}
	return due
}

// IsDone is true only when there are items and every one is explicitly done
func (issue *IssueSnapshot) IsDone() bool {
	found := false
	for _, p := range issue.Phases {
		for _, it := range p.Items {
			if !it.IsDone.ValueOrDefault(false) {
				return false
			}
			found = true
		}
	}
	return found
}

// activePhase returns the index of the highest order phase whose items are
// all estimated, or -1. Equal orders fall back to the larger phase id.
func (issue *IssueSnapshot) activePhase() int {
	best := -1
	for i := range issue.Phases {
		p := &issue.Phases[i]
		if !p.AllEstimated() {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		b := &issue.Phases[best]
		if p.Order > b.Order || (p.Order == b.Order && p.PhaseID > b.PhaseID) {
			best = i
		}
	}
	return best
}

// ComputeIssueBoarding: frozen while on hold, on-time without a due date,
// delayed once the due date has passed, on-time otherwise. The due date is
// inclusive, so an issue due today is still on time.
func ComputeIssueBoarding(stage Stage, due, today timeutil.Date) IssueBoarding {
	switch {
	case stage == StageOnHold:
		return IssueBoardingFrozen
	case due.IsZero():
		return IssueBoardingOnTime
	case due.Before(today):
		return IssueBoardingDelayed
	}
	return IssueBoardingOnTime
}

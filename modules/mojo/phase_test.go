// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package mojo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePhase_Status(t *testing.T) {
	inProgress := ItemSnapshot{EstimatedHours: estimated(4), Reports: []ReportSnapshot{report(9, 1, "a")}}
	complete := ItemSnapshot{EstimatedHours: estimated(4), Reports: []ReportSnapshot{report(9, 4, "a")}}
	todo := ItemSnapshot{EstimatedHours: estimated(4)}

	cases := []struct {
		name  string
		items []ItemSnapshot
		exp   ItemStatus
	}{
		{"in-progress dominates complete", []ItemSnapshot{inProgress, complete}, StatusInProgress},
		{"in-progress dominates to-do", []ItemSnapshot{todo, inProgress}, StatusInProgress},
		{"all complete", []ItemSnapshot{complete, complete}, StatusComplete},
		{"complete and to-do", []ItemSnapshot{complete, todo}, StatusToDo},
		{"no items", nil, StatusToDo},
	}
	for _, c := range cases {
		p := &PhaseSnapshot{Items: c.items}
		assert.Equal(t, c.exp, ComputePhase(p, now, DefaultConfig()).Status, c.name)
	}
}

func TestComputePhase_Aggregates(t *testing.T) {
	p := &PhaseSnapshot{
		ID:      7,
		PhaseID: 2,
		Items: []ItemSnapshot{
			{ID: 1, StartDate: day(6), EndDate: day(12), EstimatedHours: estimated(10), Reports: []ReportSnapshot{report(6, 5, "a"), report(7, 5, "b")}},
			{ID: 2, StartDate: day(8), EndDate: day(15), EstimatedHours: estimated(6)},
			{ID: 3},
		},
	}
	state := ComputePhase(p, now, DefaultConfig())

	assert.EqualValues(t, 7, state.ID)
	assert.EqualValues(t, 2, state.PhaseID)
	assert.Equal(t, day(6), state.StartDate)
	assert.Equal(t, day(15), state.EndDate)
	assert.InDelta(t, 16, state.EstimatedHours.Value(), 0)
	assert.InDelta(t, 10, state.HoursWorked.Value(), 0)
	assert.InDelta(t, 6, state.RemainingHours.Value(), 0)
	assert.InDelta(t, 62.5, state.Progress.Value(), 1e-9)
	assert.False(t, state.AllEstimated)
	assert.Len(t, state.Items, 3)
	// 6 hours left over 6 days against 10 hours worked so far and a 1.6 hour planned pace
	assert.Equal(t, MojoOnTime, state.Boarding.Value())
}

func TestComputePhase_Empty(t *testing.T) {
	state := ComputePhase(&PhaseSnapshot{}, now, DefaultConfig())
	assert.False(t, state.EstimatedHours.Has())
	assert.False(t, state.HoursWorked.Has())
	assert.False(t, state.Boarding.Has())
	assert.False(t, state.AllEstimated)
	assert.True(t, state.StartDate.IsZero())
}

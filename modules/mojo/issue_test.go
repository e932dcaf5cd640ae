// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package mojo

import (
	"testing"
	"time"

	"code.mojo.dev/mojo/modules/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleIssue() *IssueSnapshot {
	return &IssueSnapshot{
		ID:       1,
		Kind:     KindFeature,
		Priority: PriorityHigh,
		Stage:    StageWorking,
		Origin:   OriginNew,
		Phases: []PhaseSnapshot{
			{ID: 10, PhaseID: 1, Order: 1, Items: []ItemSnapshot{
				{ID: 100, StartDate: day(1), EndDate: day(5), EstimatedHours: estimated(8), Reports: []ReportSnapshot{report(2, 8, "design")}},
			}},
			{ID: 11, PhaseID: 2, Order: 2, Items: []ItemSnapshot{
				{ID: 101, StartDate: day(6), EndDate: day(14), EstimatedHours: estimated(20), Reports: []ReportSnapshot{report(9, 4, "code")}},
				{ID: 102, StartDate: day(6), EndDate: day(12), EstimatedHours: estimated(10)},
			}},
			{ID: 12, PhaseID: 3, Order: 3, Items: []ItemSnapshot{
				{ID: 103, EndDate: day(20)},
			}},
		},
	}
}

func TestComputeIssue(t *testing.T) {
	issue := sampleIssue()
	state := ComputeIssue(issue, now, DefaultConfig())

	assert.Equal(t, day(20), state.DueDate)
	assert.False(t, state.IsDone)
	// phase 3 still has an unestimated item, phase 2 is the furthest fully estimated one
	assert.EqualValues(t, 2, state.PhaseID.Value())
	assert.Equal(t, IssueStatusInProgress, state.Status)
	assert.Equal(t, IssueBoardingOnTime, state.Boarding)
	assert.Equal(t, 1, state.BoardingValue)
	assert.Equal(t, 3, state.PriorityValue)
	assert.False(t, state.ResponseTime.Has())
	assert.Len(t, state.Phases, 3)
}

func TestComputeIssue_NoActivePhase(t *testing.T) {
	issue := &IssueSnapshot{Stage: StageTriage, Phases: []PhaseSnapshot{
		{PhaseID: 1, Order: 1, Items: []ItemSnapshot{{ID: 1}}},
		{PhaseID: 2, Order: 2},
	}}
	state := ComputeIssue(issue, now, DefaultConfig())

	assert.False(t, state.PhaseID.Has())
	assert.Equal(t, IssueStatusToDo, state.Status)
	assert.True(t, state.DueDate.IsZero())
	assert.Equal(t, IssueBoardingOnTime, state.Boarding)
}

func TestComputeIssue_PhaseOrderTie(t *testing.T) {
	issue := &IssueSnapshot{Phases: []PhaseSnapshot{
		{PhaseID: 4, Order: 2, Items: []ItemSnapshot{{EstimatedHours: estimated(1)}}},
		{PhaseID: 9, Order: 2, Items: []ItemSnapshot{{EstimatedHours: estimated(1)}}},
		{PhaseID: 1, Order: 1, Items: []ItemSnapshot{{EstimatedHours: estimated(1)}}},
	}}
	assert.EqualValues(t, 9, ComputeIssue(issue, now, DefaultConfig()).PhaseID.Value())
}

func TestComputeIssue_IsDone(t *testing.T) {
	issue := sampleIssue()
	for i := range issue.Phases {
		for j := range issue.Phases[i].Items {
			issue.Phases[i].Items[j].IsDone = done(true)
		}
	}
	state := ComputeIssue(issue, now, DefaultConfig())
	assert.True(t, state.IsDone)
	assert.Equal(t, IssueStatusDone, state.Status)

	issue.Phases[2].Items[0].IsDone = done(false)
	assert.False(t, ComputeIssue(issue, now, DefaultConfig()).IsDone)

	issue.Phases[2].Items[0].IsDone = nil
	assert.False(t, ComputeIssue(issue, now, DefaultConfig()).IsDone)

	assert.False(t, (&IssueSnapshot{}).IsDone())
}

func TestComputeIssue_Boarding(t *testing.T) {
	issue := sampleIssue()

	issue.Stage = StageOnHold
	state := ComputeIssue(issue, now, DefaultConfig())
	assert.Equal(t, IssueBoardingFrozen, state.Boarding)
	assert.Equal(t, 3, state.BoardingValue)

	// frozen regardless of the due date
	issue.Phases[1].Items[0].EndDate = day(9)
	issue.Phases[1].Items[1].EndDate = day(8)
	issue.Phases[2].Items[0].EndDate = day(1)
	assert.Equal(t, IssueBoardingFrozen, ComputeIssue(issue, now, DefaultConfig()).Boarding)

	issue.Stage = StageWorking
	state = ComputeIssue(issue, now, DefaultConfig())
	assert.Equal(t, IssueBoardingDelayed, state.Boarding)
	assert.Equal(t, 2, state.BoardingValue)
	assert.Equal(t, day(9), state.DueDate)
}

func TestComputeIssueBoarding(t *testing.T) {
	today := day(10)
	assert.Equal(t, IssueBoardingOnTime, ComputeIssueBoarding(StageWorking, 0, today))
	assert.Equal(t, IssueBoardingOnTime, ComputeIssueBoarding(StageWorking, today, today))
	assert.Equal(t, IssueBoardingDelayed, ComputeIssueBoarding(StageBacklog, day(9), today))
	assert.Equal(t, IssueBoardingFrozen, ComputeIssueBoarding(StageOnHold, 0, today))
}

func TestComputeIssue_ResponseTime(t *testing.T) {
	issue := &IssueSnapshot{Stage: StageTriage, LastMovingTime: timeutil.TimeStampOf(now.Add(-10 * time.Hour))}
	state := ComputeIssue(issue, now, DefaultConfig())
	assert.EqualValues(t, 38, state.ResponseTime.Value())

	issue.LastMovingTime = timeutil.TimeStampOf(now.Add(-49*time.Hour - time.Minute))
	assert.EqualValues(t, -2, ComputeIssue(issue, now, DefaultConfig()).ResponseTime.Value())

	later := now.Add(500 * time.Millisecond)
	issue.LastMovingTime = timeutil.TimeStampOf(later)
	assert.EqualValues(t, 48, ComputeIssue(issue, later, DefaultConfig()).ResponseTime.Value())
}

func TestStageFields_Enter(t *testing.T) {
	f := StageFields{Stage: StageWorking, Origin: OriginNew}

	triaged, err := f.Enter("triage", now)
	require.NoError(t, err)
	assert.Equal(t, StageTriage, triaged.Stage)
	assert.EqualValues(t, now.Unix(), triaged.LastMovingTime)
	assert.Equal(t, OriginNew, triaged.Origin)

	later := now.Add(time.Hour)
	again, err := triaged.Enter("triage", later)
	require.NoError(t, err)
	assert.EqualValues(t, later.Unix(), again.LastMovingTime)

	backlog, err := triaged.Enter("backlog", later)
	require.NoError(t, err)
	assert.Equal(t, OriginBacklog, backlog.Origin)
	assert.Equal(t, triaged.LastMovingTime, backlog.LastMovingTime)

	working, err := backlog.Enter("working", later)
	require.NoError(t, err)
	assert.Equal(t, OriginBacklog, working.Origin)

	_, err = f.Enter("done", now)
	assert.True(t, IsErrInvalidStage(err))
}

func TestParseEnums(t *testing.T) {
	_, err := ParseKind("epic")
	assert.True(t, IsErrInvalidStatus(err))
	k, err := ParseKind("bug")
	require.NoError(t, err)
	assert.Equal(t, KindBug, k)

	_, err = ParsePriority("urgent")
	assert.True(t, IsErrInvalidStatus(err))
	_, err = ParseProjectStatus("archived")
	assert.True(t, IsErrInvalidStatus(err))
	st, err := ParseProjectStatus("on-hold")
	require.NoError(t, err)
	assert.Equal(t, ProjectOnHold, st)

	assert.Greater(t, PriorityHigh.Value(), PriorityNormal.Value())
	assert.Greater(t, PriorityNormal.Value(), PriorityLow.Value())
}

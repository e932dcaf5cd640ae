// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package convert_test

import (
	"testing"
	"time"

	"code.mojo.dev/mojo/models/db"
	issues_model "code.mojo.dev/mojo/models/issues"
	project_model "code.mojo.dev/mojo/models/project"
	"code.mojo.dev/mojo/models/subscription"
	"code.mojo.dev/mojo/models/unittest"
	"code.mojo.dev/mojo/modules/json"
	"code.mojo.dev/mojo/modules/mojo"
	"code.mojo.dev/mojo/modules/optional"
	"code.mojo.dev/mojo/modules/timeutil"
	"code.mojo.dev/mojo/services/convert"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC)

func day(d int) timeutil.Date {
	return timeutil.NewDate(2024, time.March, d)
}

func TestToAPIIssue(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	ctx := db.DefaultContext

	phase := &issues_model.Phase{Title: "Development", Order: 1}
	require.NoError(t, issues_model.CreatePhase(ctx, phase))
	issue := &issues_model.Issue{ProjectID: 1, Title: "convert me", Stage: mojo.StageTriage}
	require.NoError(t, issues_model.CreateIssue(ctx, issue, nil, now))
	item, err := issues_model.AssignItem(ctx, issue.ID, phase.ID, 3, now)
	require.NoError(t, err)
	_, err = issues_model.Estimate(ctx, item.ID, day(8), day(14), optional.Some(12.5), now)
	require.NoError(t, err)

	state, err := issues_model.GetIssueState(ctx, issue.ID, now)
	require.NoError(t, err)
	apiIssue, err := convert.ToAPIIssue(ctx, issue, state)
	require.NoError(t, err)

	assert.Equal(t, issue.ID, apiIssue.ID)
	assert.Equal(t, "triage", apiIssue.Stage)
	assert.Equal(t, "2024-03-14", apiIssue.DueDate)
	assert.Equal(t, "to-do", apiIssue.Status)
	assert.Empty(t, apiIssue.RelatedIssueIDs)
	require.NotNil(t, apiIssue.ResponseTime)
	assert.EqualValues(t, 48, *apiIssue.ResponseTime)
	require.NotNil(t, apiIssue.PhaseID)
	assert.Equal(t, phase.ID, *apiIssue.PhaseID)
	require.Len(t, apiIssue.Phases, 1)
	require.Len(t, apiIssue.Phases[0].Items, 1)
	assert.Equal(t, item.ID, apiIssue.Phases[0].Items[0].ID)
	require.NotNil(t, apiIssue.Phases[0].RemainingHours)
	assert.InDelta(t, 12.5, *apiIssue.Phases[0].RemainingHours, 0)

	bs, err := json.Marshal(apiIssue)
	require.NoError(t, err)
	assert.Contains(t, string(bs), `"due_date":"2024-03-14"`)
	assert.Contains(t, string(bs), `"mojo_remaining_hours":12.5`)

	// without a state only the stored columns are filled
	apiIssue, err = convert.ToAPIIssue(ctx, issue, nil)
	require.NoError(t, err)
	assert.Empty(t, apiIssue.DueDate)
	assert.Empty(t, apiIssue.Phases)
}

func TestToAPIItem(t *testing.T) {
	item := &issues_model.Item{ID: 5, MemberID: 2, StartDate: day(1), EndDate: day(3)}
	apiItem := convert.ToAPIItem(item, nil)
	assert.Equal(t, "2024-03-01", apiItem.StartDate)
	assert.Nil(t, apiItem.EstimatedHours)
	assert.Empty(t, apiItem.Status)

	apiItem = convert.ToAPIItem(item, &mojo.ItemState{
		ID:       5,
		Status:   mojo.StatusComplete,
		Boarding: optional.Some(mojo.MojoOnTime),
	})
	assert.Equal(t, "complete", apiItem.Status)
	require.NotNil(t, apiItem.Boarding)
	assert.Equal(t, "on-time", *apiItem.Boarding)
	assert.Nil(t, apiItem.Progress)
}

func TestToAPIProject(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	ctx := db.DefaultContext

	release := &project_model.Release{Title: "v1", Cutoff: timeutil.TimeStampOf(now.Add(72 * time.Hour))}
	require.NoError(t, project_model.CreateRelease(ctx, release))
	p := &project_model.Project{ReleaseID: release.ID, Title: "api", Status: mojo.ProjectQueued}
	require.NoError(t, project_model.CreateProject(ctx, p))

	apiProject, err := convert.ToAPIProject(ctx, p, now)
	require.NoError(t, err)
	assert.Equal(t, "queued", apiProject.Status)
	assert.Nil(t, apiProject.Boarding)

	apiRelease, err := convert.ToAPIRelease(ctx, release, now)
	require.NoError(t, err)
	require.NotNil(t, apiRelease.Cutoff)
	assert.Equal(t, now.Add(72*time.Hour).Unix(), apiRelease.Cutoff.Unix())
}

func TestToAPISubscription(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	ctx := db.DefaultContext

	_, err := subscription.Subscribe(ctx, 100, 7)
	require.NoError(t, err)

	s, err := convert.ToAPISubscription(ctx, 100, 7)
	require.NoError(t, err)
	assert.True(t, s.Subscribed)
	assert.Nil(t, s.SeenAt)
	assert.True(t, s.Unread)

	_, err = subscription.See(ctx, 100, 7, now)
	require.NoError(t, err)
	list, err := convert.ToAPIUnreadList(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, list.IDs)
	assert.EqualValues(t, 0, list.Count)
}

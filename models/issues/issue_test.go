// Copyright 2017 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issues_test

import (
	"testing"
	"time"

	"code.mojo.dev/mojo/models/db"
	issues_model "code.mojo.dev/mojo/models/issues"
	"code.mojo.dev/mojo/models/subscription"
	"code.mojo.dev/mojo/models/unittest"
	"code.mojo.dev/mojo/modules/mojo"
	"code.mojo.dev/mojo/modules/optional"
	"code.mojo.dev/mojo/modules/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIssue(t *testing.T) {
	unittest.PrepareTestDatabase(t)

	issue := &issues_model.Issue{ProjectID: 1, Title: "first"}
	require.NoError(t, issues_model.CreateIssue(db.DefaultContext, issue, nil, now))

	loaded := unittest.AssertExistsAndLoadBean(t, &issues_model.Issue{ID: issue.ID})
	assert.Equal(t, mojo.KindFeature, loaded.Kind)
	assert.Equal(t, mojo.PriorityNormal, loaded.Priority)
	assert.Equal(t, mojo.StageTriage, loaded.Stage)
	assert.Equal(t, mojo.OriginNew, loaded.Origin)
	// entering triage on creation starts the response clock
	assert.EqualValues(t, now.Unix(), loaded.LastMovingTime)

	backlog := &issues_model.Issue{Title: "straight to backlog", Stage: mojo.StageBacklog}
	require.NoError(t, issues_model.CreateIssue(db.DefaultContext, backlog, nil, now))
	assert.Equal(t, mojo.OriginBacklog, backlog.Origin)
	assert.True(t, backlog.LastMovingTime.IsZero())

	err := issues_model.CreateIssue(db.DefaultContext, &issues_model.Issue{Title: "x", Kind: "epic"}, nil, now)
	assert.True(t, mojo.IsErrInvalidStatus(err))
	err = issues_model.CreateIssue(db.DefaultContext, &issues_model.Issue{Title: "x", Stage: "done"}, nil, now)
	assert.True(t, mojo.IsErrInvalidStage(err))

	unittest.AssertCount(t, &issues_model.Issue{}, 2)
}

func TestCreateIssue_Bug(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	feature := createIssue(t, "feature", mojo.StageWorking)

	bug := &issues_model.Issue{Title: "bug", Kind: mojo.KindBug}
	err := issues_model.CreateIssue(db.DefaultContext, bug, nil, now)
	assert.True(t, issues_model.IsErrBugWithoutRelatedIssue(err))
	assert.ErrorIs(t, err, util.ErrInvalidArgument)

	err = issues_model.CreateIssue(db.DefaultContext, bug, []int64{unittest.NonexistentID}, now)
	assert.True(t, issues_model.IsErrIssueNotExist(err))
	unittest.AssertCount(t, &issues_model.Issue{}, 1)

	bug = &issues_model.Issue{Title: "bug", Kind: mojo.KindBug}
	require.NoError(t, issues_model.CreateIssue(db.DefaultContext, bug, []int64{feature.ID, feature.ID}, now))

	related, err := issues_model.GetRelatedIssueIDs(db.DefaultContext, bug.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{feature.ID}, related)
	related, err = issues_model.GetRelatedIssueIDs(db.DefaultContext, feature.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{bug.ID}, related)

	unittest.CheckConsistencyFor(t, &issues_model.RelatedIssue{})
}

func TestFinalizeIssue(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	feature := createIssue(t, "feature", mojo.StageWorking)

	draft := &issues_model.Issue{Title: "draft bug", Kind: mojo.KindBug, IsDraft: true}
	require.NoError(t, issues_model.CreateIssue(db.DefaultContext, draft, nil, now))

	_, err := issues_model.FinalizeIssue(db.DefaultContext, draft.ID)
	assert.True(t, issues_model.IsErrBugWithoutRelatedIssue(err))
	assert.True(t, unittest.AssertExistsAndLoadBean(t, &issues_model.Issue{ID: draft.ID}).IsDraft)

	require.NoError(t, issues_model.RelateIssues(db.DefaultContext, draft.ID, feature.ID))
	// relating twice keeps a single pair of edges
	require.NoError(t, issues_model.RelateIssues(db.DefaultContext, feature.ID, draft.ID))
	unittest.AssertCount(t, &issues_model.RelatedIssue{}, 2)

	finalized, err := issues_model.FinalizeIssue(db.DefaultContext, draft.ID)
	require.NoError(t, err)
	assert.False(t, finalized.IsDraft)
	assert.False(t, unittest.AssertExistsAndLoadBean(t, &issues_model.Issue{ID: draft.ID}).IsDraft)

	assert.Error(t, issues_model.RelateIssues(db.DefaultContext, feature.ID, feature.ID))

	require.NoError(t, issues_model.UnrelateIssues(db.DefaultContext, feature.ID, draft.ID))
	unittest.AssertCount(t, &issues_model.RelatedIssue{}, 0)
}

func TestSetStage(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	issue := createIssue(t, "moving", mojo.StageWorking)
	assert.True(t, issue.LastMovingTime.IsZero())

	later := now.Add(90 * time.Minute)
	moved, err := issues_model.SetStage(db.DefaultContext, issue.ID, "triage", later)
	require.NoError(t, err)
	assert.EqualValues(t, later.Unix(), moved.LastMovingTime)

	moved, err = issues_model.SetStage(db.DefaultContext, issue.ID, "backlog", later.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, mojo.OriginBacklog, moved.Origin)

	loaded := unittest.AssertExistsAndLoadBean(t, &issues_model.Issue{ID: issue.ID})
	assert.Equal(t, mojo.StageBacklog, loaded.Stage)
	assert.Equal(t, mojo.OriginBacklog, loaded.Origin)
	assert.EqualValues(t, later.Unix(), loaded.LastMovingTime)

	_, err = issues_model.SetStage(db.DefaultContext, issue.ID, "closed", now)
	assert.True(t, mojo.IsErrInvalidStage(err))
	_, err = issues_model.SetStage(db.DefaultContext, unittest.NonexistentID, "triage", now)
	assert.True(t, issues_model.IsErrIssueNotExist(err))
}

func TestDeleteIssue(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	phase := createPhase(t, "Development", 1)
	keep := createIssue(t, "keep", mojo.StageWorking)
	doomed := createIssue(t, "doomed", mojo.StageWorking)
	require.NoError(t, issues_model.RelateIssues(db.DefaultContext, doomed.ID, keep.ID))

	item := assignItem(t, doomed.ID, phase.ID, 7)
	_, err := issues_model.Estimate(db.DefaultContext, item.ID, day(5), day(15), optional.Some(8.0), now)
	require.NoError(t, err)
	_, err = issues_model.RecordDailyReport(db.DefaultContext, item.ID, day(9), 2, "started")
	require.NoError(t, err)
	keptItem := assignItem(t, keep.ID, phase.ID, 7)
	_, err = subscription.See(db.DefaultContext, doomed.ID, 7, now)
	require.NoError(t, err)

	require.NoError(t, issues_model.DeleteIssue(db.DefaultContext, doomed.ID))

	unittest.AssertNotExistsBean(t, &issues_model.Issue{ID: doomed.ID})
	unittest.AssertCount(t, &issues_model.Item{}, 1)
	unittest.AssertExistsAndLoadBean(t, &issues_model.Item{ID: keptItem.ID})
	unittest.AssertCount(t, &issues_model.IssuePhase{}, 1)
	unittest.AssertCount(t, &issues_model.Dailyreport{}, 0)
	unittest.AssertCount(t, &issues_model.RelatedIssue{}, 0)
	unittest.AssertCount(t, &subscription.Subscription{}, 0)

	err = issues_model.DeleteIssue(db.DefaultContext, doomed.ID)
	assert.True(t, issues_model.IsErrIssueNotExist(err))
	assert.ErrorIs(t, err, util.ErrNotExist)
}

func TestFindIssues(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	a := createIssue(t, "a", mojo.StageWorking)
	createIssue(t, "b", mojo.StageTriage)
	other := &issues_model.Issue{ProjectID: 2, Title: "c", Stage: mojo.StageWorking}
	require.NoError(t, issues_model.CreateIssue(db.DefaultContext, other, nil, now))

	issues, err := db.Find[issues_model.Issue](db.DefaultContext, issues_model.FindIssuesOptions{ProjectIDs: []int64{1}, Stage: mojo.StageWorking})
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, a.ID, issues[0].ID)

	cnt, err := db.Count[issues_model.Issue](db.DefaultContext, issues_model.FindIssuesOptions{Stage: mojo.StageWorking})
	require.NoError(t, err)
	assert.EqualValues(t, 2, cnt)

	issues, err = db.Find[issues_model.Issue](db.DefaultContext, issues_model.FindIssuesOptions{Keyword: "C"})
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, other.ID, issues[0].ID)
}

func TestGetIssueByID(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	issue := createIssue(t, "lookup", mojo.StageWorking)

	loaded, err := issues_model.GetIssueByID(db.DefaultContext, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, "lookup", loaded.Title)
	assert.NotZero(t, loaded.CreatedUnix)

	_, err = issues_model.GetIssueByID(db.DefaultContext, unittest.NonexistentID)
	assert.True(t, issues_model.IsErrIssueNotExist(err))
}

// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package project_test

import (
	"testing"

	"code.mojo.dev/mojo/models/db"
	project_model "code.mojo.dev/mojo/models/project"
	"code.mojo.dev/mojo/models/unittest"
	"code.mojo.dev/mojo/modules/mojo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatistic(t *testing.T) {
	unittest.PrepareTestDatabase(t)

	active := createProject(t, 0, mojo.ProjectActive)
	createProject(t, 0, mojo.ProjectQueued)
	createDueIssue(t, active.ID, day(20))
	createDueIssue(t, active.ID, day(8))
	createDueIssue(t, active.ID, 0)

	stats, err := project_model.GetStatistic(db.DefaultContext, now)
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.Counter.Release)
	assert.EqualValues(t, 2, stats.Counter.Project)
	assert.EqualValues(t, 1, stats.Counter.ProjectByStatus[mojo.ProjectActive])
	assert.EqualValues(t, 1, stats.Counter.ProjectByStatus[mojo.ProjectQueued])
	assert.EqualValues(t, 3, stats.Counter.Issue)
	assert.EqualValues(t, 3, stats.Counter.IssueByStage[mojo.StageWorking])
	assert.EqualValues(t, 3, stats.Counter.IssueByStatus[mojo.IssueStatusToDo])
	assert.EqualValues(t, 2, stats.Counter.IssueByBoarding[mojo.IssueBoardingOnTime])
	assert.EqualValues(t, 1, stats.Counter.IssueByBoarding[mojo.IssueBoardingDelayed])
	assert.EqualValues(t, 3, stats.Counter.Item)
	assert.EqualValues(t, 1, stats.Counter.ItemNeedEstimate)
	assert.EqualValues(t, 0, stats.Counter.Dailyreport)
}

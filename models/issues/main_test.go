// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issues_test

import (
	"testing"
	"time"

	"code.mojo.dev/mojo/models/db"
	issues_model "code.mojo.dev/mojo/models/issues"
	"code.mojo.dev/mojo/modules/mojo"
	"code.mojo.dev/mojo/modules/timeutil"

	"github.com/stretchr/testify/require"
)

// now is 2024-03-10 10:00 UTC, the instant every operation in these tests happens at
var now = time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC)

func day(d int) timeutil.Date {
	return timeutil.NewDate(2024, time.March, d)
}

func createPhase(t *testing.T, title string, order int64) *issues_model.Phase {
	t.Helper()
	p := &issues_model.Phase{Title: title, Order: order, Skill: "dev"}
	require.NoError(t, issues_model.CreatePhase(db.DefaultContext, p))
	return p
}

func createIssue(t *testing.T, title string, stage mojo.Stage) *issues_model.Issue {
	t.Helper()
	issue := &issues_model.Issue{ProjectID: 1, Title: title, Stage: stage}
	require.NoError(t, issues_model.CreateIssue(db.DefaultContext, issue, nil, now))
	return issue
}

func assignItem(t *testing.T, issueID, phaseID, memberID int64) *issues_model.Item {
	t.Helper()
	item, err := issues_model.AssignItem(db.DefaultContext, issueID, phaseID, memberID, now)
	require.NoError(t, err)
	return item
}

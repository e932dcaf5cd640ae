// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"code.mojo.dev/mojo/models/db"
	issues_model "code.mojo.dev/mojo/models/issues"
	project_model "code.mojo.dev/mojo/models/project"
	"code.mojo.dev/mojo/models/unittest"
	"code.mojo.dev/mojo/modules/metrics"
	"code.mojo.dev/mojo/modules/mojo"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return now }

func TestCollector(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	ctx := db.DefaultContext

	p := &project_model.Project{Title: "metrics", Status: mojo.ProjectActive}
	require.NoError(t, project_model.CreateProject(ctx, p))
	require.NoError(t, issues_model.CreateIssue(ctx, &issues_model.Issue{ProjectID: p.ID, Title: "a"}, nil, now))
	require.NoError(t, issues_model.CreateIssue(ctx, &issues_model.Issue{ProjectID: p.ID, Title: "b", Stage: mojo.StageOnHold}, nil, now))

	c := metrics.NewCollector(ctx, fixedNow)
	// 6 unlabelled gauges, one project status, two stages, one status, two boardings
	assert.Equal(t, 12, testutil.CollectAndCount(c))

	file := filepath.Join(t.TempDir(), "mojo.prom")
	require.NoError(t, metrics.WriteTextfile(ctx, file, fixedNow))
	bs, err := os.ReadFile(file)
	require.NoError(t, err)
	content := string(bs)
	assert.Contains(t, content, "mojo_issues 2\n")
	assert.Contains(t, content, `mojo_issues_by_stage{stage="on-hold"} 1`)
	assert.Contains(t, content, `mojo_issues_by_stage{stage="triage"} 1`)
	assert.Contains(t, content, `mojo_issues_by_boarding{boarding="frozen"} 1`)
	assert.Contains(t, content, `mojo_projects_by_status{status="active"} 1`)
	assert.Contains(t, content, "# HELP mojo_items_need_estimate Number of Items waiting for an estimate")
}

// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cron

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"code.mojo.dev/mojo/models/db"
	project_model "code.mojo.dev/mojo/models/project"
	"code.mojo.dev/mojo/models/unittest"
	"code.mojo.dev/mojo/modules/mojo"
	"code.mojo.dev/mojo/modules/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportMetrics(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	ctx := db.DefaultContext
	require.NoError(t, project_model.CreateProject(ctx, &project_model.Project{Title: "cron", Status: mojo.ProjectActive}))

	file := filepath.Join(t.TempDir(), "mojo.prom")
	require.NoError(t, exportMetrics(ctx, &ExportMetricsConfig{FileName: file}))
	bs, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(bs), "mojo_projects 1\n")

	assert.ErrorIs(t, exportMetrics(ctx, &ExportMetricsConfig{}), util.ErrInvalidArgument)
}

func TestCron(t *testing.T) {
	ran := make(chan struct{}, 1)
	require.NoError(t, RegisterTask("test_run_at_start", &BaseConfig{
		Enabled:    true,
		RunAtStart: true,
		Schedule:   "@every 1h",
	}, func(ctx context.Context, _ Config) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return errors.New("it failed")
	}))
	require.NoError(t, RegisterTask("test_disabled", &BaseConfig{Schedule: "@every 1h"}, func(context.Context, Config) error {
		return nil
	}))
	assert.Error(t, RegisterTask("test_disabled", &BaseConfig{}, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, NewContext(ctx))
	assert.Error(t, NewContext(ctx))

	select {
	case <-ran:
	case <-time.After(10 * time.Second):
		require.FailNow(t, "task did not run at start")
	}

	rows := map[string]*TaskTableRow{}
	assert.Eventually(t, func() bool {
		for _, row := range ListTasks() {
			rows[row.Name] = row
		}
		return rows["test_run_at_start"] != nil && rows["test_run_at_start"].LastError != ""
	}, 10*time.Second, 10*time.Millisecond)

	assert.Equal(t, "@every 1h", rows["test_run_at_start"].Spec)
	assert.GreaterOrEqual(t, rows["test_run_at_start"].ExecTimes, int64(1))
	assert.True(t, strings.HasPrefix(rows["test_run_at_start"].LastError, "it failed"))
	assert.Equal(t, "-", rows["test_disabled"].Spec)
	// export_metrics is off unless configured
	require.NotNil(t, rows["export_metrics"])
	assert.Equal(t, "-", rows["export_metrics"].Spec)

	task := GetTask("export_metrics")
	require.NotNil(t, task)
	assert.Equal(t, "@every 1m", task.config.GetSchedule())
	assert.IsType(t, &ExportMetricsConfig{}, task.GetConfig())
	assert.False(t, task.IsEnabled())
}

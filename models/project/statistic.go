// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package project

import (
	"context"
	"time"

	"code.mojo.dev/mojo/models/db"
	issues_model "code.mojo.dev/mojo/models/issues"
	"code.mojo.dev/mojo/modules/mojo"

	"xorm.io/builder"
)

// Statistic contains the tracker wide counts, derived ones are evaluated at a single instant
type Statistic struct {
	Counter struct {
		Release, Project, Issue, Item, Dailyreport int64

		ItemNeedEstimate int64
		ProjectByStatus  map[mojo.ProjectStatus]int64
		IssueByStage     map[mojo.Stage]int64
		IssueByStatus    map[mojo.IssueStatus]int64
		IssueByBoarding  map[mojo.IssueBoarding]int64
	}
}

// GetStatistic returns the counts of all entities and the derived issue states at now
func GetStatistic(ctx context.Context, now time.Time) (*Statistic, error) {
	stats := new(Statistic)
	stats.Counter.ProjectByStatus = make(map[mojo.ProjectStatus]int64)
	stats.Counter.IssueByStage = make(map[mojo.Stage]int64)
	stats.Counter.IssueByStatus = make(map[mojo.IssueStatus]int64)
	stats.Counter.IssueByBoarding = make(map[mojo.IssueBoarding]int64)

	err := db.AutoTx(ctx, func(ctx context.Context) (err error) {
		if stats.Counter.Release, err = db.CountByBean(ctx, new(Release)); err != nil {
			return err
		}
		if stats.Counter.Item, err = db.CountByBean(ctx, new(issues_model.Item)); err != nil {
			return err
		}
		if stats.Counter.Dailyreport, err = db.CountByBean(ctx, new(issues_model.Dailyreport)); err != nil {
			return err
		}
		if stats.Counter.ItemNeedEstimate, err = db.Count[issues_model.Item](ctx, issues_model.FindItemsOptions{NeedEstimate: true}); err != nil {
			return err
		}

		err = db.Iterate(ctx, builder.NewCond(), func(ctx context.Context, p *Project) error {
			stats.Counter.Project++
			stats.Counter.ProjectByStatus[p.Status]++
			return nil
		})
		if err != nil {
			return err
		}

		return db.Iterate(ctx, builder.NewCond(), func(ctx context.Context, issue *issues_model.Issue) error {
			state, err := issues_model.GetIssueState(ctx, issue.ID, now)
			if err != nil {
				return err
			}
			stats.Counter.Issue++
			stats.Counter.IssueByStage[issue.Stage]++
			stats.Counter.IssueByStatus[state.Status]++
			stats.Counter.IssueByBoarding[state.Boarding]++
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

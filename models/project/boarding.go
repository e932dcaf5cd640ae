// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package project

import (
	"context"
	"time"

	"code.mojo.dev/mojo/models/db"
	issues_model "code.mojo.dev/mojo/models/issues"
	"code.mojo.dev/mojo/modules/mojo"
	"code.mojo.dev/mojo/modules/optional"
	"code.mojo.dev/mojo/modules/timeutil"

	"xorm.io/builder"
)

// issueDueDates returns the due dates of the issues of the projects, in issue iteration order
func issueDueDates(ctx context.Context, projectIDs []int64) ([]timeutil.Date, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	var issueIDs []int64
	err := db.Iterate(ctx, builder.In("project_id", projectIDs), func(ctx context.Context, issue *issues_model.Issue) error {
		issueIDs = append(issueIDs, issue.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	dues, err := issues_model.GetIssueDueDates(ctx, issueIDs)
	if err != nil {
		return nil, err
	}
	res := make([]timeutil.Date, 0, len(issueIDs))
	for _, id := range issueIDs {
		// zero for issues without due date
		res = append(res, dues[id])
	}
	return res, nil
}

// GetProjectBoarding classifies a project against the cutoff of its release
func GetProjectBoarding(ctx context.Context, projectID int64, now time.Time) (optional.Option[mojo.ContainerBoarding], error) {
	var res optional.Option[mojo.ContainerBoarding]
	err := db.AutoTx(ctx, func(ctx context.Context) error {
		p, err := GetProjectByID(ctx, projectID)
		if err != nil {
			return err
		}
		var cutoff timeutil.TimeStamp
		if p.ReleaseID > 0 {
			r, err := GetReleaseByID(ctx, p.ReleaseID)
			if err != nil {
				return err
			}
			cutoff = r.Cutoff
		}
		dues, err := issueDueDates(ctx, []int64{p.ID})
		if err != nil {
			return err
		}
		res = mojo.ComputeContainerBoarding(p.Status, cutoff, dues, now, issues_model.MojoConfig())
		return nil
	})
	return res, err
}

// GetReleaseBoarding classifies a release over the issues of all its
// projects. A release is never queued, so only an empty release has no boarding.
func GetReleaseBoarding(ctx context.Context, releaseID int64, now time.Time) (optional.Option[mojo.ContainerBoarding], error) {
	var res optional.Option[mojo.ContainerBoarding]
	err := db.AutoTx(ctx, func(ctx context.Context) error {
		r, err := GetReleaseByID(ctx, releaseID)
		if err != nil {
			return err
		}
		projects, err := db.Find[Project](ctx, SearchOptions{ReleaseID: r.ID})
		if err != nil {
			return err
		}
		projectIDs := make([]int64, 0, len(projects))
		for _, p := range projects {
			projectIDs = append(projectIDs, p.ID)
		}
		dues, err := issueDueDates(ctx, projectIDs)
		if err != nil {
			return err
		}
		res = mojo.ComputeContainerBoarding(mojo.ProjectActive, r.Cutoff, dues, now, issues_model.MojoConfig())
		return nil
	})
	return res, err
}

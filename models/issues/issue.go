// Copyright 2014 The Gogs Authors. All rights reserved.
// Copyright 2020 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issues

import (
	"context"
	"fmt"
	"time"

	"code.mojo.dev/mojo/models/db"
	"code.mojo.dev/mojo/models/subscription"
	"code.mojo.dev/mojo/modules/log"
	"code.mojo.dev/mojo/modules/mojo"
	"code.mojo.dev/mojo/modules/timeutil"
	"code.mojo.dev/mojo/modules/util"

	"xorm.io/builder"
)

// ErrIssueNotExist represents a "IssueNotExist" kind of error.
type ErrIssueNotExist struct {
	ID int64
}

// IsErrIssueNotExist checks if an error is a ErrIssueNotExist.
func IsErrIssueNotExist(err error) bool {
	_, ok := err.(ErrIssueNotExist)
	return ok
}

func (err ErrIssueNotExist) Error() string {
	return fmt.Sprintf("issue does not exist [id: %d]", err.ID)
}

func (err ErrIssueNotExist) Unwrap() error {
	return util.ErrNotExist
}

// ErrBugWithoutRelatedIssue represents a bug that is created or finalized without any related issue
type ErrBugWithoutRelatedIssue struct {
	IssueID int64
}

// IsErrBugWithoutRelatedIssue checks if an error is a ErrBugWithoutRelatedIssue.
func IsErrBugWithoutRelatedIssue(err error) bool {
	_, ok := err.(ErrBugWithoutRelatedIssue)
	return ok
}

func (err ErrBugWithoutRelatedIssue) Error() string {
	return fmt.Sprintf("bug must reference at least one related issue [id: %d]", err.IssueID)
}

func (err ErrBugWithoutRelatedIssue) Unwrap() error {
	return util.ErrInvalidArgument
}

// Issue represents an issue of a project.
type Issue struct {
	ID             int64              `xorm:"pk autoincr"`
	ProjectID      int64              `xorm:"INDEX"`
	Title          string             `xorm:"NOT NULL"`
	Kind           mojo.Kind          `xorm:"VARCHAR(16) NOT NULL DEFAULT 'feature'"`
	Priority       mojo.Priority      `xorm:"VARCHAR(16) NOT NULL DEFAULT 'normal'"`
	Stage          mojo.Stage         `xorm:"VARCHAR(16) INDEX NOT NULL DEFAULT 'triage'"`
	Origin         mojo.Origin        `xorm:"VARCHAR(16) NOT NULL DEFAULT 'new'"`
	LastMovingTime timeutil.TimeStamp `xorm:"INDEX"`
	// IsDraft issues skip the write-time checks until they are finalized
	IsDraft bool `xorm:"NOT NULL DEFAULT false"`

	CreatedUnix timeutil.TimeStamp `xorm:"INDEX created"`
	UpdatedUnix timeutil.TimeStamp `xorm:"INDEX updated"`
}

func init() {
	db.RegisterModel(new(Issue))
}

// stageFields returns the columns a stage transition works on
func (issue *Issue) stageFields() mojo.StageFields {
	return mojo.StageFields{Stage: issue.Stage, Origin: issue.Origin, LastMovingTime: issue.LastMovingTime}
}

func (issue *Issue) setStageFields(f mojo.StageFields) {
	issue.Stage, issue.Origin, issue.LastMovingTime = f.Stage, f.Origin, f.LastMovingTime
}

// normalize fills the defaults of a new issue and validates its enumerations
func (issue *Issue) normalize() (err error) {
	if issue.Kind == "" {
		issue.Kind = mojo.KindFeature
	}
	if issue.Priority == "" {
		issue.Priority = mojo.PriorityNormal
	}
	if issue.Stage == "" {
		issue.Stage = mojo.StageTriage
	}
	issue.Origin = mojo.OriginNew

	if issue.Kind, err = mojo.ParseKind(string(issue.Kind)); err != nil {
		return err
	}
	if issue.Priority, err = mojo.ParsePriority(string(issue.Priority)); err != nil {
		return err
	}
	_, err = mojo.ParseStage(string(issue.Stage))
	return err
}

// GetIssueByID returns an issue by given ID.
func GetIssueByID(ctx context.Context, id int64) (*Issue, error) {
	issue, has, err := db.GetByID[Issue](ctx, id)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrIssueNotExist{id}
	}
	return issue, nil
}

// FindIssuesOptions represents the options to find issues
type FindIssuesOptions struct {
	IssueIDs   []int64
	ProjectIDs []int64
	Stage      mojo.Stage
	IsDraft    *bool
	Keyword    string
}

// ToConds implements db.FindOptions
func (opts FindIssuesOptions) ToConds() builder.Cond {
	cond := builder.NewCond()
	if len(opts.IssueIDs) > 0 {
		cond = cond.And(builder.In("id", opts.IssueIDs))
	}
	if len(opts.ProjectIDs) > 0 {
		cond = cond.And(builder.In("project_id", opts.ProjectIDs))
	}
	if opts.Stage != "" {
		cond = cond.And(builder.Eq{"stage": opts.Stage})
	}
	if opts.IsDraft != nil {
		cond = cond.And(builder.Eq{"is_draft": *opts.IsDraft})
	}
	if opts.Keyword != "" {
		cond = cond.And(db.BuildCaseInsensitiveLike("title", opts.Keyword))
	}
	return cond
}

// ToOrders implements db.FindOptionsOrder, issues are listed in creation order
func (opts FindIssuesOptions) ToOrders() string {
	return "project_id ASC, id ASC"
}

// CreateIssue inserts a new issue related to relatedIDs. The issue enters its
// initial stage with the stage side effects applied. Unless it is a draft, a
// bug must come with at least one related issue.
func CreateIssue(ctx context.Context, issue *Issue, relatedIDs []int64, now time.Time) error {
	if err := issue.normalize(); err != nil {
		return err
	}
	relatedIDs = util.UniqueIDs(relatedIDs)
	if !issue.IsDraft && issue.Kind == mojo.KindBug && len(relatedIDs) == 0 {
		return ErrBugWithoutRelatedIssue{}
	}
	f, err := issue.stageFields().Enter(string(issue.Stage), now)
	if err != nil {
		return err
	}
	issue.setStageFields(f)

	return db.WithTx(ctx, func(ctx context.Context) error {
		if err := db.Insert(ctx, issue); err != nil {
			return err
		}
		return relateIssues(ctx, issue.ID, relatedIDs)
	})
}

// FinalizeIssue runs the write-time checks of a draft issue and clears its draft flag
func FinalizeIssue(ctx context.Context, issueID int64) (*Issue, error) {
	var issue *Issue
	err := db.WithTx(ctx, func(ctx context.Context) (err error) {
		if issue, err = GetIssueByID(ctx, issueID); err != nil {
			return err
		}
		if issue.Kind == mojo.KindBug {
			related, err := GetRelatedIssueIDs(ctx, issue.ID)
			if err != nil {
				return err
			}
			if len(related) == 0 {
				return ErrBugWithoutRelatedIssue{IssueID: issue.ID}
			}
		}
		if !issue.IsDraft {
			return nil
		}
		issue.IsDraft = false
		_, err = db.GetEngine(ctx).ID(issue.ID).Cols("is_draft").Update(issue)
		return err
	})
	if err != nil {
		return nil, err
	}
	return issue, nil
}

// SetStage moves an issue to stage and applies the entry side effects
func SetStage(ctx context.Context, issueID int64, stage string, now time.Time) (*Issue, error) {
	var issue *Issue
	err := db.WithTx(ctx, func(ctx context.Context) (err error) {
		if issue, err = GetIssueByID(ctx, issueID); err != nil {
			return err
		}
		f, err := issue.stageFields().Enter(stage, now)
		if err != nil {
			return err
		}
		issue.setStageFields(f)
		_, err = db.GetEngine(ctx).ID(issue.ID).Cols("stage", "origin", "last_moving_time").Update(issue)
		return err
	})
	if err != nil {
		return nil, err
	}
	return issue, nil
}

// DeleteIssue deletes an issue with everything it owns: issue phases, items,
// daily reports, related issue edges in both directions and subscriptions.
func DeleteIssue(ctx context.Context, issueID int64) error {
	return db.AutoTx(ctx, func(ctx context.Context) error {
		if _, err := GetIssueByID(ctx, issueID); err != nil {
			return err
		}
		e := db.GetEngine(ctx)

		phaseIDs := builder.Select("id").From("issue_phase").Where(builder.Eq{"issue_id": issueID})
		itemIDs := builder.Select("id").From("item").Where(builder.In("issue_phase_id", phaseIDs))
		if _, err := e.Where(builder.In("item_id", itemIDs)).Delete(new(Dailyreport)); err != nil {
			return fmt.Errorf("delete daily reports: %w", err)
		}
		if _, err := e.Where(builder.In("issue_phase_id", phaseIDs)).Delete(new(Item)); err != nil {
			return fmt.Errorf("delete items: %w", err)
		}
		if _, err := e.Where(builder.Eq{"issue_id": issueID}).Delete(new(IssuePhase)); err != nil {
			return fmt.Errorf("delete issue phases: %w", err)
		}
		if _, err := e.Where(builder.Eq{"issue_id": issueID}.Or(builder.Eq{"related_id": issueID})).Delete(new(RelatedIssue)); err != nil {
			return fmt.Errorf("delete related issues: %w", err)
		}
		if err := subscription.DeleteSubscriptions(ctx, issueID); err != nil {
			return err
		}
		if _, err := db.DeleteByID[Issue](ctx, issueID); err != nil {
			return err
		}
		log.Trace("Issue %d deleted", issueID)
		return nil
	})
}

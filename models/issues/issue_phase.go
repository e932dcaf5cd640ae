// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issues

import (
	"context"
	"fmt"

	"code.mojo.dev/mojo/models/db"
	"code.mojo.dev/mojo/modules/util"

	"xorm.io/builder"
)

// ErrIssuePhaseNotExist represents a "IssuePhaseNotExist" kind of error.
type ErrIssuePhaseNotExist struct {
	ID      int64
	IssueID int64
	PhaseID int64
}

// IsErrIssuePhaseNotExist checks if an error is a ErrIssuePhaseNotExist.
func IsErrIssuePhaseNotExist(err error) bool {
	_, ok := err.(ErrIssuePhaseNotExist)
	return ok
}

func (err ErrIssuePhaseNotExist) Error() string {
	return fmt.Sprintf("issue phase does not exist [id: %d, issue_id: %d, phase_id: %d]", err.ID, err.IssueID, err.PhaseID)
}

func (err ErrIssuePhaseNotExist) Unwrap() error {
	return util.ErrNotExist
}

// IssuePhase schedules work of an issue in a phase, it holds the items of that work
type IssuePhase struct {
	ID      int64 `xorm:"pk autoincr"`
	IssueID int64 `xorm:"UNIQUE(s) NOT NULL"`
	PhaseID int64 `xorm:"UNIQUE(s) INDEX NOT NULL"`
}

func init() {
	db.RegisterModel(new(IssuePhase))
}

// GetIssuePhaseByID returns an issue phase by given ID.
func GetIssuePhaseByID(ctx context.Context, id int64) (*IssuePhase, error) {
	ip, has, err := db.GetByID[IssuePhase](ctx, id)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrIssuePhaseNotExist{ID: id}
	}
	return ip, nil
}

// getOrCreateIssuePhase returns the issue phase of (issueID, phaseID), creating it when needed
func getOrCreateIssuePhase(ctx context.Context, issueID, phaseID int64) (*IssuePhase, error) {
	ip := &IssuePhase{IssueID: issueID, PhaseID: phaseID}
	has, err := db.GetByBean(ctx, ip)
	if err != nil {
		return nil, err
	} else if has {
		return ip, nil
	}
	if err := db.Insert(ctx, ip); err != nil {
		return nil, err
	}
	return ip, nil
}

// FindIssuePhasesOptions represents the options to find issue phases
type FindIssuePhasesOptions struct {
	IssueIDs []int64
	PhaseID  int64
}

// ToConds implements db.FindOptions
func (opts FindIssuePhasesOptions) ToConds() builder.Cond {
	cond := builder.NewCond()
	if len(opts.IssueIDs) > 0 {
		cond = cond.And(builder.In("issue_id", opts.IssueIDs))
	}
	if opts.PhaseID > 0 {
		cond = cond.And(builder.Eq{"phase_id": opts.PhaseID})
	}
	return cond
}

// ToOrders implements db.FindOptionsOrder
func (opts FindIssuePhasesOptions) ToOrders() string {
	return "issue_id ASC, id ASC"
}

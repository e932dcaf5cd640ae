// Copyright 2020 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package project

import (
	"context"
	"fmt"

	"code.mojo.dev/mojo/models/db"
	issues_model "code.mojo.dev/mojo/models/issues"
	"code.mojo.dev/mojo/modules/log"
	"code.mojo.dev/mojo/modules/mojo"
	"code.mojo.dev/mojo/modules/timeutil"
	"code.mojo.dev/mojo/modules/util"

	"xorm.io/builder"
)

// ErrProjectNotExist represents a "ProjectNotExist" kind of error.
type ErrProjectNotExist struct {
	ID int64
}

// IsErrProjectNotExist checks if an error is a ErrProjectNotExist
func IsErrProjectNotExist(err error) bool {
	_, ok := err.(ErrProjectNotExist)
	return ok
}

func (err ErrProjectNotExist) Error() string {
	return fmt.Sprintf("projects does not exist [id: %d]", err.ID)
}

func (err ErrProjectNotExist) Unwrap() error {
	return util.ErrNotExist
}

// Project represents a project of a release
type Project struct {
	ID        int64              `xorm:"pk autoincr"`
	ReleaseID int64              `xorm:"INDEX"`
	Title     string             `xorm:"INDEX NOT NULL"`
	Status    mojo.ProjectStatus `xorm:"VARCHAR(16) INDEX NOT NULL DEFAULT 'queued'"`

	CreatedUnix timeutil.TimeStamp `xorm:"INDEX created"`
	UpdatedUnix timeutil.TimeStamp `xorm:"INDEX updated"`
}

func init() {
	db.RegisterModel(new(Project))
}

// SearchOptions are options for FindProjects
type SearchOptions struct {
	ReleaseID int64
	Status    mojo.ProjectStatus
}

// ToConds implements db.FindOptions
func (opts SearchOptions) ToConds() builder.Cond {
	cond := builder.NewCond()
	if opts.ReleaseID > 0 {
		cond = cond.And(builder.Eq{"release_id": opts.ReleaseID})
	}
	if opts.Status != "" {
		cond = cond.And(builder.Eq{"status": opts.Status})
	}
	return cond
}

// ToOrders implements db.FindOptionsOrder
func (opts SearchOptions) ToOrders() string {
	return "id ASC"
}

// CreateProject inserts a new project, a project starts queued unless told otherwise
func CreateProject(ctx context.Context, p *Project) error {
	if p.Title == "" {
		return util.NewInvalidArgumentErrorf("project title is empty")
	}
	if p.Status == "" {
		p.Status = mojo.ProjectQueued
	}
	if _, err := mojo.ParseProjectStatus(string(p.Status)); err != nil {
		return err
	}

	return db.WithTx(ctx, func(ctx context.Context) error {
		if p.ReleaseID > 0 {
			if _, err := GetReleaseByID(ctx, p.ReleaseID); err != nil {
				return err
			}
		}
		return db.Insert(ctx, p)
	})
}

// GetProjectByID returns the project with id
func GetProjectByID(ctx context.Context, id int64) (*Project, error) {
	p, has, err := db.GetByID[Project](ctx, id)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrProjectNotExist{ID: id}
	}
	return p, nil
}

// ChangeProjectStatus moves a project to status
func ChangeProjectStatus(ctx context.Context, id int64, status string) (*Project, error) {
	st, err := mojo.ParseProjectStatus(status)
	if err != nil {
		return nil, err
	}
	var p *Project
	err = db.WithTx(ctx, func(ctx context.Context) (err error) {
		if p, err = GetProjectByID(ctx, id); err != nil {
			return err
		}
		p.Status = st
		_, err = db.GetEngine(ctx).ID(p.ID).Cols("status").Update(p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProjectByID deletes a project with all of its issues
func DeleteProjectByID(ctx context.Context, id int64) error {
	return db.WithTx(ctx, func(ctx context.Context) error {
		if _, err := GetProjectByID(ctx, id); err != nil {
			return err
		}
		issues, err := db.Find[issues_model.Issue](ctx, issues_model.FindIssuesOptions{ProjectIDs: []int64{id}})
		if err != nil {
			return err
		}
		for _, issue := range issues {
			if err := issues_model.DeleteIssue(ctx, issue.ID); err != nil {
				return err
			}
		}
		if _, err := db.DeleteByID[Project](ctx, id); err != nil {
			return err
		}
		log.Trace("Project %d deleted", id)
		return nil
	})
}

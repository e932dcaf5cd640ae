// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package project

import (
	"context"
	"fmt"

	"code.mojo.dev/mojo/models/db"
	"code.mojo.dev/mojo/modules/timeutil"
	"code.mojo.dev/mojo/modules/util"
)

// ErrReleaseNotExist represents a "ReleaseNotExist" kind of error.
type ErrReleaseNotExist struct {
	ID int64
}

// IsErrReleaseNotExist checks if an error is a ErrReleaseNotExist
func IsErrReleaseNotExist(err error) bool {
	_, ok := err.(ErrReleaseNotExist)
	return ok
}

func (err ErrReleaseNotExist) Error() string {
	return fmt.Sprintf("release does not exist [id: %d]", err.ID)
}

func (err ErrReleaseNotExist) Unwrap() error {
	return util.ErrNotExist
}

// Release groups projects that ship together before its cutoff
type Release struct {
	ID          int64              `xorm:"pk autoincr"`
	Title       string             `xorm:"INDEX NOT NULL"`
	Cutoff      timeutil.TimeStamp `xorm:"INDEX"`
	CreatedUnix timeutil.TimeStamp `xorm:"INDEX created"`
	UpdatedUnix timeutil.TimeStamp `xorm:"INDEX updated"`
}

func init() {
	db.RegisterModel(new(Release))
}

// CreateRelease inserts a new release
func CreateRelease(ctx context.Context, r *Release) error {
	if r.Title == "" {
		return util.NewInvalidArgumentErrorf("release title is empty")
	}
	return db.Insert(ctx, r)
}

// GetReleaseByID returns the release with id
func GetReleaseByID(ctx context.Context, id int64) (*Release, error) {
	r, has, err := db.GetByID[Release](ctx, id)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrReleaseNotExist{id}
	}
	return r, nil
}

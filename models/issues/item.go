// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issues

import (
	"context"
	"fmt"
	"time"

	"code.mojo.dev/mojo/models/db"
	"code.mojo.dev/mojo/modules/log"
	"code.mojo.dev/mojo/modules/optional"
	"code.mojo.dev/mojo/modules/timeutil"
	"code.mojo.dev/mojo/modules/util"

	"xorm.io/builder"
)

// ErrItemNotExist represents a "ItemNotExist" kind of error.
type ErrItemNotExist struct {
	ID int64
}

// IsErrItemNotExist checks if an error is a ErrItemNotExist.
func IsErrItemNotExist(err error) bool {
	_, ok := err.(ErrItemNotExist)
	return ok
}

func (err ErrItemNotExist) Error() string {
	return fmt.Sprintf("item does not exist [id: %d]", err.ID)
}

func (err ErrItemNotExist) Unwrap() error {
	return util.ErrNotExist
}

// ErrItemAlreadyExist represents a second assignment of a member to the same issue phase
type ErrItemAlreadyExist struct {
	IssuePhaseID int64
	MemberID     int64
}

// IsErrItemAlreadyExist checks if an error is a ErrItemAlreadyExist.
func IsErrItemAlreadyExist(err error) bool {
	_, ok := err.(ErrItemAlreadyExist)
	return ok
}

func (err ErrItemAlreadyExist) Error() string {
	return fmt.Sprintf("member is already assigned to the issue phase [issue_phase_id: %d, member_id: %d]", err.IssuePhaseID, err.MemberID)
}

func (err ErrItemAlreadyExist) Unwrap() error {
	return util.ErrAlreadyExist
}

// ErrNegativeHours represents hours below zero
type ErrNegativeHours struct {
	Hours float64
}

// IsErrNegativeHours checks if an error is a ErrNegativeHours.
func IsErrNegativeHours(err error) bool {
	_, ok := err.(ErrNegativeHours)
	return ok
}

func (err ErrNegativeHours) Error() string {
	return fmt.Sprintf("hours must not be negative [hours: %g]", err.Hours)
}

func (err ErrNegativeHours) Unwrap() error {
	return util.ErrInvalidArgument
}

// Item is the work of one member on an issue phase
type Item struct {
	ID           int64         `xorm:"pk autoincr"`
	IssuePhaseID int64         `xorm:"UNIQUE(s) NOT NULL"`
	MemberID     int64         `xorm:"UNIQUE(s) INDEX NOT NULL"`
	StartDate    timeutil.Date `xorm:"NOT NULL DEFAULT 0"`
	EndDate      timeutil.Date `xorm:"INDEX NOT NULL DEFAULT 0"`
	// EstimatedHours is NULL until the item is estimated
	EstimatedHours        *float64           `xorm:"NULL"`
	NeedEstimateTimestamp timeutil.TimeStamp `xorm:"INDEX"`
	IsDone                *bool              `xorm:"NULL"`

	CreatedUnix timeutil.TimeStamp `xorm:"created"`
	UpdatedUnix timeutil.TimeStamp `xorm:"updated"`
}

func init() {
	db.RegisterModel(new(Item))
}

// GetItemByID returns an item by given ID.
func GetItemByID(ctx context.Context, id int64) (*Item, error) {
	item, has, err := db.GetByID[Item](ctx, id)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrItemNotExist{id}
	}
	return item, nil
}

// FindItemsOptions represents the options to find items
type FindItemsOptions struct {
	IssuePhaseIDs []int64
	MemberID      int64
	NeedEstimate  bool
}

// ToConds implements db.FindOptions
func (opts FindItemsOptions) ToConds() builder.Cond {
	cond := builder.NewCond()
	if len(opts.IssuePhaseIDs) > 0 {
		cond = cond.And(builder.In("issue_phase_id", opts.IssuePhaseIDs))
	}
	if opts.MemberID > 0 {
		cond = cond.And(builder.Eq{"member_id": opts.MemberID})
	}
	if opts.NeedEstimate {
		cond = cond.And(builder.Neq{"need_estimate_timestamp": 0})
	}
	return cond
}

// ToOrders implements db.FindOptionsOrder
func (opts FindItemsOptions) ToOrders() string {
	return "issue_phase_id ASC, id ASC"
}

// AssignItem assigns memberID to the phaseID work of issueID. The issue phase
// is created on first assignment, the new item starts waiting for its estimate at now.
func AssignItem(ctx context.Context, issueID, phaseID, memberID int64, now time.Time) (*Item, error) {
	var item *Item
	err := db.WithTx(ctx, func(ctx context.Context) error {
		if _, err := GetIssueByID(ctx, issueID); err != nil {
			return err
		}
		if _, err := GetPhaseByID(ctx, phaseID); err != nil {
			return err
		}
		ip, err := getOrCreateIssuePhase(ctx, issueID, phaseID)
		if err != nil {
			return err
		}

		exist, err := db.Exist[Item](ctx, builder.Eq{"issue_phase_id": ip.ID, "member_id": memberID})
		if err != nil {
			return err
		} else if exist {
			return ErrItemAlreadyExist{IssuePhaseID: ip.ID, MemberID: memberID}
		}

		item = &Item{
			IssuePhaseID:          ip.ID,
			MemberID:              memberID,
			NeedEstimateTimestamp: timeutil.TimeStampOf(now),
		}
		return db.Insert(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	log.Trace("Member %d assigned to issue %d phase %d as item %d", memberID, issueID, phaseID, item.ID)
	return item, nil
}

// Estimate schedules an item and sets its hours estimate. Supplying hours
// stops the estimate clock; passing None reverts the item to not estimated
// and restarts the clock at now.
func Estimate(ctx context.Context, itemID int64, start, end timeutil.Date, hours optional.Option[float64], now time.Time) (*Item, error) {
	if !start.IsZero() && !end.IsZero() {
		if _, err := timeutil.DaysInclusive(start, end); err != nil {
			return nil, err
		}
	}
	if hours.Has() && hours.Value() < 0 {
		return nil, ErrNegativeHours{Hours: hours.Value()}
	}

	var item *Item
	err := db.WithTx(ctx, func(ctx context.Context) (err error) {
		if item, err = GetItemByID(ctx, itemID); err != nil {
			return err
		}
		item.StartDate, item.EndDate = start, end
		item.EstimatedHours = hours.Ptr()
		if hours.Has() {
			item.NeedEstimateTimestamp = 0
		} else {
			item.NeedEstimateTimestamp = timeutil.TimeStampOf(now)
		}
		// a map update, so that a nil estimate is written as NULL
		_, err = db.GetEngine(ctx).Table("item").ID(item.ID).Update(map[string]any{
			"start_date":              item.StartDate,
			"end_date":                item.EndDate,
			"estimated_hours":         item.EstimatedHours,
			"need_estimate_timestamp": item.NeedEstimateTimestamp,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// SetItemDone sets or clears the explicit completion flag of an item
func SetItemDone(ctx context.Context, itemID int64, done optional.Option[bool]) (*Item, error) {
	var item *Item
	err := db.WithTx(ctx, func(ctx context.Context) (err error) {
		if item, err = GetItemByID(ctx, itemID); err != nil {
			return err
		}
		item.IsDone = done.Ptr()
		_, err = db.GetEngine(ctx).Table("item").ID(item.ID).Update(map[string]any{"is_done": item.IsDone})
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

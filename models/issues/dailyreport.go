// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issues

import (
	"context"
	"fmt"

	"code.mojo.dev/mojo/models/db"
	"code.mojo.dev/mojo/modules/mojo"
	"code.mojo.dev/mojo/modules/timeutil"
	"code.mojo.dev/mojo/modules/util"

	"xorm.io/builder"
)

// ErrDailyreportNotExist represents a "DailyreportNotExist" kind of error.
type ErrDailyreportNotExist struct {
	ID int64
}

// IsErrDailyreportNotExist checks if an error is a ErrDailyreportNotExist.
func IsErrDailyreportNotExist(err error) bool {
	_, ok := err.(ErrDailyreportNotExist)
	return ok
}

func (err ErrDailyreportNotExist) Error() string {
	return fmt.Sprintf("daily report does not exist [id: %d]", err.ID)
}

func (err ErrDailyreportNotExist) Unwrap() error {
	return util.ErrNotExist
}

// ErrDuplicateReport represents a second report of an item for the same date
type ErrDuplicateReport struct {
	ItemID int64
	Date   timeutil.Date
}

// IsErrDuplicateReport checks if an error is a ErrDuplicateReport.
func IsErrDuplicateReport(err error) bool {
	_, ok := err.(ErrDuplicateReport)
	return ok
}

func (err ErrDuplicateReport) Error() string {
	return fmt.Sprintf("daily report already exists [item_id: %d, date: %s]", err.ItemID, err.Date)
}

func (err ErrDuplicateReport) Unwrap() error {
	return util.ErrAlreadyExist
}

// ErrOutOfRange represents a report dated outside of the schedule of its item
type ErrOutOfRange struct {
	ItemID int64
	Date   timeutil.Date
	Start  timeutil.Date
	End    timeutil.Date
}

// IsErrOutOfRange checks if an error is a ErrOutOfRange.
func IsErrOutOfRange(err error) bool {
	_, ok := err.(ErrOutOfRange)
	return ok
}

func (err ErrOutOfRange) Error() string {
	return fmt.Sprintf("daily report date is outside of the item schedule [item_id: %d, date: %s, start: %s, end: %s]", err.ItemID, err.Date, err.Start, err.End)
}

func (err ErrOutOfRange) Unwrap() error {
	return util.ErrInvalidArgument
}

// ErrMissingNote represents a report with logged hours but without a note
type ErrMissingNote struct {
	Hours float64
}

// IsErrMissingNote checks if an error is a ErrMissingNote.
func IsErrMissingNote(err error) bool {
	_, ok := err.(ErrMissingNote)
	return ok
}

func (err ErrMissingNote) Error() string {
	return fmt.Sprintf("a report with logged hours needs a note [hours: %g]", err.Hours)
}

func (err ErrMissingNote) Unwrap() error {
	return util.ErrInvalidArgument
}

// Dailyreport is one day of logged work on an item. A report without a note
// is a placeholder for a day that is due.
type Dailyreport struct {
	ID     int64         `xorm:"pk autoincr"`
	ItemID int64         `xorm:"UNIQUE(s) NOT NULL"`
	Date   timeutil.Date `xorm:"UNIQUE(s) NOT NULL"`
	Hours  float64       `xorm:"NOT NULL DEFAULT 0"`
	Note   string        `xorm:"TEXT"`

	CreatedUnix timeutil.TimeStamp `xorm:"created"`
	UpdatedUnix timeutil.TimeStamp `xorm:"updated"`
}

func init() {
	db.RegisterModel(new(Dailyreport))
}

func (r *Dailyreport) snapshot() mojo.ReportSnapshot {
	return mojo.ReportSnapshot{Date: r.Date, Hours: r.Hours, Note: r.Note}
}

func validateReport(hours float64, note string) error {
	if hours < 0 {
		return ErrNegativeHours{Hours: hours}
	}
	if hours > 0 && note == "" {
		return ErrMissingNote{Hours: hours}
	}
	return nil
}

// GetDailyreportByID returns a daily report by given ID.
func GetDailyreportByID(ctx context.Context, id int64) (*Dailyreport, error) {
	r, has, err := db.GetByID[Dailyreport](ctx, id)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrDailyreportNotExist{id}
	}
	return r, nil
}

// FindDailyreportsOptions represents the options to find daily reports
type FindDailyreportsOptions struct {
	ItemIDs []int64
	From    timeutil.Date
	To      timeutil.Date
}

// ToConds implements db.FindOptions
func (opts FindDailyreportsOptions) ToConds() builder.Cond {
	cond := builder.NewCond()
	if len(opts.ItemIDs) > 0 {
		cond = cond.And(builder.In("item_id", opts.ItemIDs))
	}
	if !opts.From.IsZero() {
		cond = cond.And(builder.Gte{"date": opts.From})
	}
	if !opts.To.IsZero() {
		cond = cond.And(builder.Lte{"date": opts.To})
	}
	return cond
}

// ToOrders implements db.FindOptionsOrder
func (opts FindDailyreportsOptions) ToOrders() string {
	return "item_id ASC, date ASC"
}

// RecordDailyReport logs hours of an item for date. An item has at most one
// report per date, and a scheduled item only takes reports inside its schedule.
func RecordDailyReport(ctx context.Context, itemID int64, date timeutil.Date, hours float64, note string) (*Dailyreport, error) {
	if date.IsZero() {
		return nil, util.NewInvalidArgumentErrorf("daily report date is empty")
	}
	if err := validateReport(hours, note); err != nil {
		return nil, err
	}

	report := &Dailyreport{ItemID: itemID, Date: date, Hours: hours, Note: note}
	err := db.WithTx(ctx, func(ctx context.Context) error {
		item, err := GetItemByID(ctx, itemID)
		if err != nil {
			return err
		}
		if !item.StartDate.IsZero() && !item.EndDate.IsZero() &&
			(date.Before(item.StartDate) || date.After(item.EndDate)) {
			return ErrOutOfRange{ItemID: itemID, Date: date, Start: item.StartDate, End: item.EndDate}
		}

		exist, err := db.Exist[Dailyreport](ctx, builder.Eq{"item_id": itemID, "date": date})
		if err != nil {
			return err
		} else if exist {
			return ErrDuplicateReport{ItemID: itemID, Date: date}
		}
		return db.Insert(ctx, report)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// UpdateDailyReport amends the hours and note of a report, its date never changes
func UpdateDailyReport(ctx context.Context, reportID int64, hours float64, note string) (*Dailyreport, error) {
	if err := validateReport(hours, note); err != nil {
		return nil, err
	}
	var report *Dailyreport
	err := db.WithTx(ctx, func(ctx context.Context) (err error) {
		if report, err = GetDailyreportByID(ctx, reportID); err != nil {
			return err
		}
		report.Hours, report.Note = hours, note
		_, err = db.GetEngine(ctx).ID(report.ID).Cols("hours", "note").Update(report)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

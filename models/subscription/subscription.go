// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package subscription

import (
	"context"
	"fmt"
	"slices"
	"time"

	"code.mojo.dev/mojo/models/db"
	"code.mojo.dev/mojo/modules/mojo"
	"code.mojo.dev/mojo/modules/timeutil"
	"code.mojo.dev/mojo/modules/util"

	"xorm.io/builder"
)

// ErrNotSubscribed represents a missing standing subscription
type ErrNotSubscribed struct {
	SubscribableID int64
	MemberID       int64
}

// IsErrNotSubscribed checks if an error is a ErrNotSubscribed.
func IsErrNotSubscribed(err error) bool {
	_, ok := err.(ErrNotSubscribed)
	return ok
}

func (err ErrNotSubscribed) Error() string {
	return fmt.Sprintf("member is not subscribed [subscribable_id: %d, member_id: %d]", err.SubscribableID, err.MemberID)
}

func (err ErrNotSubscribed) Unwrap() error {
	return util.ErrNotExist
}

// ErrAlreadySubscribed represents a second standing subscription of a member
type ErrAlreadySubscribed struct {
	SubscribableID int64
	MemberID       int64
}

// IsErrAlreadySubscribed checks if an error is a ErrAlreadySubscribed.
func IsErrAlreadySubscribed(err error) bool {
	_, ok := err.(ErrAlreadySubscribed)
	return ok
}

func (err ErrAlreadySubscribed) Error() string {
	return fmt.Sprintf("member is already subscribed [subscribable_id: %d, member_id: %d]", err.SubscribableID, err.MemberID)
}

func (err ErrAlreadySubscribed) Unwrap() error {
	return util.ErrAlreadyExist
}

// Subscription of a member to a subscribable. A pair has at most one standing
// row and at most one one-shot row; one-shot rows are mention markers.
type Subscription struct {
	ID             int64              `xorm:"pk autoincr"`
	SubscribableID int64              `xorm:"UNIQUE(s) INDEX NOT NULL"`
	MemberID       int64              `xorm:"UNIQUE(s) INDEX NOT NULL"`
	OneShot        bool               `xorm:"UNIQUE(s) NOT NULL DEFAULT false"`
	SeenAt         timeutil.TimeStamp `xorm:"NOT NULL DEFAULT 0"`
	CreatedUnix    timeutil.TimeStamp `xorm:"created"`
}

func init() {
	db.RegisterModel(new(Subscription))
}

func (s *Subscription) snapshot() mojo.SubscriptionSnapshot {
	return mojo.SubscriptionSnapshot{SeenAt: s.SeenAt, OneShot: s.OneShot}
}

func snapshots(rows []*Subscription) []mojo.SubscriptionSnapshot {
	res := make([]mojo.SubscriptionSnapshot, 0, len(rows))
	for _, r := range rows {
		res = append(res, r.snapshot())
	}
	return res
}

// getRows returns every row of the pair, the standing one first
func getRows(ctx context.Context, subscribableID, memberID int64) ([]*Subscription, error) {
	rows := make([]*Subscription, 0, 2)
	return rows, db.GetEngine(ctx).
		Where("subscribable_id = ? AND member_id = ?", subscribableID, memberID).
		Asc("one_shot").
		Find(&rows)
}

func getStanding(ctx context.Context, subscribableID, memberID int64) (*Subscription, bool, error) {
	s := new(Subscription)
	has, err := db.GetEngine(ctx).
		Where("subscribable_id = ? AND member_id = ? AND one_shot = ?", subscribableID, memberID, false).
		Get(s)
	return s, has, err
}

// IsSubscribed reports whether the viewer holds a standing subscription
func IsSubscribed(ctx context.Context, subscribableID, viewerID int64) (bool, error) {
	rows, err := getRows(ctx, subscribableID, viewerID)
	if err != nil {
		return false, err
	}
	return mojo.IsSubscribed(snapshots(rows)), nil
}

// GetSeenAt returns when the viewer last saw the subscribable, zero when unseen or unsubscribed
func GetSeenAt(ctx context.Context, subscribableID, viewerID int64) (timeutil.TimeStamp, error) {
	rows, err := getRows(ctx, subscribableID, viewerID)
	if err != nil {
		return 0, err
	}
	return mojo.SeenAt(snapshots(rows)), nil
}

// See marks the subscribable seen by the viewer at now, subscribing the viewer
// when needed. A one-shot row of the pair is left as it is.
func See(ctx context.Context, subscribableID, viewerID int64, now time.Time) (*Subscription, error) {
	var s *Subscription
	err := db.WithTx(ctx, func(ctx context.Context) error {
		var has bool
		var err error
		if s, has, err = getStanding(ctx, subscribableID, viewerID); err != nil {
			return err
		}
		s.SeenAt = timeutil.TimeStampOf(now)
		if !has {
			s.SubscribableID, s.MemberID = subscribableID, viewerID
			return db.Insert(ctx, s)
		}
		_, err = db.GetEngine(ctx).ID(s.ID).Cols("seen_at").Update(s)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Unsee marks the subscribable unseen by the viewer again
func Unsee(ctx context.Context, subscribableID, viewerID int64) error {
	return db.WithTx(ctx, func(ctx context.Context) error {
		s, has, err := getStanding(ctx, subscribableID, viewerID)
		if err != nil {
			return err
		} else if !has {
			return ErrNotSubscribed{SubscribableID: subscribableID, MemberID: viewerID}
		}
		s.SeenAt = 0
		_, err = db.GetEngine(ctx).ID(s.ID).Cols("seen_at").Update(s)
		return err
	})
}

// Mention notifies memberID of the subscribable with a one-shot row, unless
// the member already has a row of either kind. It reports whether a row was created.
func Mention(ctx context.Context, subscribableID, memberID int64) (bool, error) {
	created := false
	err := db.WithTx(ctx, func(ctx context.Context) error {
		exist, err := db.Exist[Subscription](ctx, builder.Eq{"subscribable_id": subscribableID, "member_id": memberID})
		if err != nil || exist {
			return err
		}
		created = true
		return db.Insert(ctx, &Subscription{SubscribableID: subscribableID, MemberID: memberID, OneShot: true})
	})
	return created, err
}

// Subscribe creates the standing subscription of the viewer
func Subscribe(ctx context.Context, subscribableID, viewerID int64) (*Subscription, error) {
	s := &Subscription{SubscribableID: subscribableID, MemberID: viewerID}
	err := db.WithTx(ctx, func(ctx context.Context) error {
		_, has, err := getStanding(ctx, subscribableID, viewerID)
		if err != nil {
			return err
		} else if has {
			return ErrAlreadySubscribed{SubscribableID: subscribableID, MemberID: viewerID}
		}
		return db.Insert(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Unsubscribe drops the standing subscription of the viewer together with a
// pending mention marker of the pair
func Unsubscribe(ctx context.Context, subscribableID, viewerID int64) error {
	return db.WithTx(ctx, func(ctx context.Context) error {
		n, err := db.GetEngine(ctx).
			Where("subscribable_id = ? AND member_id = ? AND one_shot = ?", subscribableID, viewerID, false).
			Delete(new(Subscription))
		if err != nil {
			return err
		} else if n == 0 {
			return ErrNotSubscribed{SubscribableID: subscribableID, MemberID: viewerID}
		}
		_, err = db.GetEngine(ctx).
			Where("subscribable_id = ? AND member_id = ? AND one_shot = ?", subscribableID, viewerID, true).
			Delete(new(Subscription))
		return err
	})
}

// DeleteSubscriptions drops every row of the subscribable
func DeleteSubscriptions(ctx context.Context, subscribableID int64) error {
	_, err := db.GetEngine(ctx).Where("subscribable_id = ?", subscribableID).Delete(new(Subscription))
	return err
}

// assignedCond selects the issues the member has an item on
func assignedCond(memberID int64) *builder.Builder {
	return builder.Select("issue_phase.issue_id").From("item").
		InnerJoin("issue_phase", "issue_phase.id = item.issue_phase_id").
		Where(builder.Eq{"item.member_id": memberID})
}

// IsAssignee reports whether the member has an item on the issue
func IsAssignee(ctx context.Context, issueID, memberID int64) (bool, error) {
	return db.GetEngine(ctx).Table("item").
		Join("INNER", "issue_phase", "issue_phase.id = item.issue_phase_id").
		Where(builder.Eq{"item.member_id": memberID, "issue_phase.issue_id": issueID}).
		Exist()
}

// IsUnread reports whether the subscribable is unread for the viewer
func IsUnread(ctx context.Context, subscribableID, viewerID int64) (bool, error) {
	rows, err := getRows(ctx, subscribableID, viewerID)
	if err != nil {
		return false, err
	}
	assignee, err := IsAssignee(ctx, subscribableID, viewerID)
	if err != nil {
		return false, err
	}
	return mojo.IsUnread(snapshots(rows), assignee), nil
}

// GetUnreadIDs returns the unread subscribables of the viewer in ascending
// order. Candidates are the subscribables the viewer has rows on and the
// issues the viewer is assigned to.
func GetUnreadIDs(ctx context.Context, viewerID int64) ([]int64, error) {
	var unread []int64
	err := db.AutoTx(ctx, func(ctx context.Context) error {
		rows := make([]*Subscription, 0, 10)
		if err := db.GetEngine(ctx).Where("member_id = ?", viewerID).Find(&rows); err != nil {
			return err
		}
		assigned := make([]int64, 0, 10)
		if err := db.GetEngine(ctx).SQL(assignedCond(viewerID)).Find(&assigned); err != nil {
			return err
		}

		bySubscribable := make(map[int64][]mojo.SubscriptionSnapshot, len(rows))
		for _, r := range rows {
			bySubscribable[r.SubscribableID] = append(bySubscribable[r.SubscribableID], r.snapshot())
		}
		isAssignee := make(map[int64]bool, len(assigned))
		for _, id := range assigned {
			isAssignee[id] = true
			if _, ok := bySubscribable[id]; !ok {
				bySubscribable[id] = nil
			}
		}

		for id, snaps := range bySubscribable {
			if mojo.IsUnread(snaps, isAssignee[id]) {
				unread = append(unread, id)
			}
		}
		slices.Sort(unread)
		return nil
	})
	return unread, err
}

// CountUnread counts the unread subscribables of the viewer
func CountUnread(ctx context.Context, viewerID int64) (int64, error) {
	ids, err := GetUnreadIDs(ctx, viewerID)
	return int64(len(ids)), err
}

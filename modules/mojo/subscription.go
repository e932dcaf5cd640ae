// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package mojo

import (
	"code.mojo.dev/mojo/modules/timeutil"
)

// SubscriptionSnapshot is one subscription row of a viewer on a subscribable
type SubscriptionSnapshot struct {
	SeenAt  timeutil.TimeStamp
	OneShot bool
}

// standing returns the standing row among rows, one-shot rows are mention markers
func standing(rows []SubscriptionSnapshot) (SubscriptionSnapshot, bool) {
	for _, r := range rows {
		if !r.OneShot {
			return r, true
		}
	}
	return SubscriptionSnapshot{}, false
}

// IsSubscribed is true when the viewer holds a standing subscription
func IsSubscribed(rows []SubscriptionSnapshot) bool {
	_, ok := standing(rows)
	return ok
}

// SeenAt returns when the viewer last saw the subscribable, zero if never or unseen
func SeenAt(rows []SubscriptionSnapshot) timeutil.TimeStamp {
	s, _ := standing(rows)
	return s.SeenAt
}

// IsUnread decides whether the subscribable is unread for the viewer. With a
// standing subscription it is unread until seen. Without one it is unread only
// for stakeholders: assignees, and members mentioned through a one-shot row.
func IsUnread(rows []SubscriptionSnapshot, isAssignee bool) bool {
	if s, ok := standing(rows); ok {
		return s.SeenAt.IsZero()
	}
	if isAssignee {
		return true
	}
	for _, r := range rows {
		if r.OneShot && r.SeenAt.IsZero() {
			return true
		}
	}
	return false
}

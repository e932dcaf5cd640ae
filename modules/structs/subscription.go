// Copyright 2017 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package structs

import (
	"time"
)

// Subscription is how a viewer follows a subscribable
type Subscription struct {
	SubscribableID int64      `json:"subscribable_id"`
	MemberID       int64      `json:"member_id"`
	Subscribed     bool       `json:"subscribed"`
	SeenAt         *time.Time `json:"seen_at"`
	Unread         bool       `json:"unread"`
}

// UnreadList lists the unread subscribables of a viewer
type UnreadList struct {
	MemberID int64   `json:"member_id"`
	IDs      []int64 `json:"ids"`
	Count    int64   `json:"count"`
}

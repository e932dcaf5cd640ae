// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package convert

import (
	"context"

	"code.mojo.dev/mojo/models/subscription"
	api "code.mojo.dev/mojo/modules/structs"
)

// ToAPISubscription reports how a viewer follows a subscribable
func ToAPISubscription(ctx context.Context, subscribableID, viewerID int64) (*api.Subscription, error) {
	subscribed, err := subscription.IsSubscribed(ctx, subscribableID, viewerID)
	if err != nil {
		return nil, err
	}
	seenAt, err := subscription.GetSeenAt(ctx, subscribableID, viewerID)
	if err != nil {
		return nil, err
	}
	unread, err := subscription.IsUnread(ctx, subscribableID, viewerID)
	if err != nil {
		return nil, err
	}
	return &api.Subscription{
		SubscribableID: subscribableID,
		MemberID:       viewerID,
		Subscribed:     subscribed,
		SeenAt:         seenAt.AsTimePtr(),
		Unread:         unread,
	}, nil
}

// ToAPIUnreadList lists what a viewer has not read yet
func ToAPIUnreadList(ctx context.Context, viewerID int64) (*api.UnreadList, error) {
	ids, err := subscription.GetUnreadIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return &api.UnreadList{
		MemberID: viewerID,
		IDs:      ids,
		Count:    int64(len(ids)),
	}, nil
}

// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package mention_test

import (
	"testing"

	"code.mojo.dev/mojo/models/db"
	_ "code.mojo.dev/mojo/models/issues" // unread checks join item and issue_phase
	"code.mojo.dev/mojo/models/subscription"
	"code.mojo.dev/mojo/models/unittest"
	"code.mojo.dev/mojo/modules/util"
	"code.mojo.dev/mojo/services/mention"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload(t *testing.T) {
	p, err := mention.ParsePayload([]byte(`{"subscribable_id": 4, "member_ids": [3, 3, 5], "text": "cc @5 @8"}`))
	require.NoError(t, err)
	assert.EqualValues(t, 4, p.SubscribableID)
	assert.Equal(t, []int64{3, 5, 8}, p.Members())

	_, err = mention.ParsePayload([]byte(`{"member_ids": [3]}`))
	assert.ErrorIs(t, err, util.ErrInvalidArgument)
	_, err = mention.ParsePayload([]byte(`not json`))
	assert.ErrorIs(t, err, util.ErrInvalidArgument)
	_, err = mention.ParsePayload([]byte(`{"subscribable_id": 4, "delivery": "first"}`))
	assert.ErrorIs(t, err, util.ErrInvalidArgument)
}

func TestHandlePayload(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	body := []byte(`{"subscribable_id": 10, "member_ids": [7]}`)

	res, err := mention.HandlePayload(db.DefaultContext, body)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, []int64{7}, res.Notified)
	_, err = uuid.Parse(res.Delivery)
	assert.NoError(t, err)

	// the webhook may be delivered again
	res, err = mention.HandlePayload(db.DefaultContext, body)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.Empty(t, res.Notified)
	unittest.AssertCount(t, &subscription.Subscription{SubscribableID: 10, MemberID: 7, OneShot: true}, 1)
	unittest.AssertCount(t, &subscription.Subscription{}, 1)
}

func TestHandlePayload_Text(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	_, err := subscription.Subscribe(db.DefaultContext, 11, 2)
	require.NoError(t, err)

	res, err := mention.HandlePayload(db.DefaultContext, []byte(`{"subscribable_id": 11, "text": "@2 and @3, please look (@4)", "delivery": "0d0c1b4e-7a55-4d3c-a0f1-3b1b8a1e2f10"}`))
	require.NoError(t, err)
	assert.Equal(t, "0d0c1b4e-7a55-4d3c-a0f1-3b1b8a1e2f10", res.Delivery)
	assert.Equal(t, 3, res.Processed)
	assert.Equal(t, []int64{3, 4}, res.Notified)

	unread, err := subscription.IsUnread(db.DefaultContext, 11, 3)
	require.NoError(t, err)
	assert.True(t, unread)
	unittest.CheckConsistencyFor(t, &subscription.Subscription{})
}

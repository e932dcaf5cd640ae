// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package mojo

import (
	"testing"

	"code.mojo.dev/mojo/modules/timeutil"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionResolver(t *testing.T) {
	seen := timeutil.TimeStampOf(now)
	mention := SubscriptionSnapshot{OneShot: true}

	assert.False(t, IsSubscribed(nil))
	assert.False(t, IsSubscribed([]SubscriptionSnapshot{mention}))
	assert.True(t, IsSubscribed([]SubscriptionSnapshot{mention, {SeenAt: seen}}))

	assert.True(t, SeenAt([]SubscriptionSnapshot{mention}).IsZero())
	assert.Equal(t, seen, SeenAt([]SubscriptionSnapshot{mention, {SeenAt: seen}}))

	cases := []struct {
		name     string
		rows     []SubscriptionSnapshot
		assignee bool
		exp      bool
	}{
		{"standing unseen", []SubscriptionSnapshot{{}}, false, true},
		{"standing seen", []SubscriptionSnapshot{{SeenAt: seen}}, true, false},
		{"seen and mentioned", []SubscriptionSnapshot{mention, {SeenAt: seen}}, false, false},
		{"only mentioned", []SubscriptionSnapshot{mention}, false, true},
		{"assignee without rows", nil, true, true},
		{"stranger without rows", nil, false, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.exp, IsUnread(c.rows, c.assignee), c.name)
	}
}

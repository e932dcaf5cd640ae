// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package mojo

import (
	"testing"
	"time"

	"code.mojo.dev/mojo/modules/timeutil"

	"github.com/stretchr/testify/assert"
)

func TestComputeContainerBoarding(t *testing.T) {
	cfg := DefaultConfig()
	cutoff := timeutil.TimeStampOf(time.Date(2024, time.March, 20, 18, 0, 0, 0, time.UTC))

	cases := []struct {
		name   string
		status ProjectStatus
		dues   []timeutil.Date
		exp    ContainerBoarding
		has    bool
	}{
		{"queued", ProjectQueued, []timeutil.Date{day(12)}, "", false},
		{"no issues", ProjectActive, nil, "", false},
		{"all within cutoff", ProjectActive, []timeutil.Date{day(12), day(20)}, ContainerOnTime, true},
		{"due after the cutoff", ProjectActive, []timeutil.Date{day(12), day(21)}, ContainerAtRisk, true},
		{"past due", ProjectActive, []timeutil.Date{day(9), day(12)}, ContainerDelayed, true},
		{"first disqualifying issue wins", ProjectActive, []timeutil.Date{day(9), day(25)}, ContainerDelayed, true},
		{"at-risk first", ProjectOnHold, []timeutil.Date{day(25), day(9)}, ContainerAtRisk, true},
		{"issues without due dates", ProjectActive, []timeutil.Date{0, 0}, ContainerOnTime, true},
	}
	for _, c := range cases {
		res := ComputeContainerBoarding(c.status, cutoff, c.dues, now, cfg)
		assert.Equal(t, c.has, res.Has(), c.name)
		assert.Equal(t, c.exp, res.Value(), c.name)
	}

	res := ComputeContainerBoarding(ProjectActive, 0, []timeutil.Date{day(30)}, now, cfg)
	assert.Equal(t, ContainerOnTime, res.Value())
}

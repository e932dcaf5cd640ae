// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package mojo

import (
	"time"

	"code.mojo.dev/mojo/modules/optional"
	"code.mojo.dev/mojo/modules/timeutil"
)

// ComputeContainerBoarding classifies a project or a release from the due
// dates of its issues, in the given order. A queued or empty container has no
// boarding. The first issue due after the cutoff makes it at-risk, the first
// issue already past its due date makes it delayed.
func ComputeContainerBoarding(status ProjectStatus, cutoff timeutil.TimeStamp, dueDates []timeutil.Date, now time.Time, cfg Config) optional.Option[ContainerBoarding] {
	if status == ProjectQueued || len(dueDates) == 0 {
		return optional.None[ContainerBoarding]()
	}
	today := cfg.Today(now)
	var cutoffDate timeutil.Date
	if !cutoff.IsZero() {
		cutoffDate = timeutil.Today(cutoff.AsTimeInLocation(time.UTC), cfg.Location)
	}
	for _, due := range dueDates {
		if due.IsZero() {
			continue
		}
		if !cutoffDate.IsZero() && due.After(cutoffDate) {
			return optional.Some(ContainerAtRisk)
		}
		if due.Before(today) {
			return optional.Some(ContainerDelayed)
		}
	}
	return optional.Some(ContainerOnTime)
}

// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package mojo

import (
	"code.mojo.dev/mojo/modules/optional"
	"code.mojo.dev/mojo/modules/timeutil"
)

// burn holds the inputs shared by item and phase mojo figures
type burn struct {
	estimated optional.Option[float64]
	worked    optional.Option[float64]
	reports   int
	start     timeutil.Date
	end       timeutil.Date
}

// remaining is estimated minus worked, nothing logged counts as zero worked
func (b burn) remaining() optional.Option[float64] {
	if !b.estimated.Has() {
		return optional.None[float64]()
	}
	return optional.Some(b.estimated.Value() - b.worked.ValueOrDefault(0))
}

func (b burn) progress() optional.Option[float64] {
	if !b.estimated.Has() || b.estimated.Value() == 0 {
		return optional.None[float64]()
	}
	return optional.Some(b.worked.ValueOrDefault(0) / b.estimated.Value() * 100)
}

func (b burn) daysLeft(today timeutil.Date) optional.Option[int64] {
	if b.end.IsZero() {
		return optional.None[int64]()
	}
	return optional.Some(timeutil.DaysLeft(today, b.end))
}

// boarding applies the three tiers: at-risk when the hours worked so far,
// spread over the days left, cannot clear what is left, delayed when the
// planned daily pace cannot, on-time otherwise. The planned pace needs a
// start date, without one only the at-risk tier is checked.
func (b burn) boarding(today timeutil.Date) optional.Option[MojoBoarding] {
	if !b.estimated.Has() || b.end.IsZero() {
		return optional.None[MojoBoarding]()
	}
	var total int64
	if !b.start.IsZero() {
		var err error
		if total, err = timeutil.DaysInclusive(b.start, b.end); err != nil {
			return optional.None[MojoBoarding]()
		}
	}

	remaining := b.remaining().Value()
	if remaining <= 0 {
		return optional.Some(MojoOnTime)
	}
	daysLeft := float64(timeutil.DaysLeft(today, b.end))
	if daysLeft <= 0 {
		return optional.Some(MojoAtRisk)
	}
	// nothing logged yet leaves the work-to-date tier undecided
	if b.reports > 0 && remaining > daysLeft*b.worked.ValueOrDefault(0) {
		return optional.Some(MojoAtRisk)
	}
	if total > 0 && remaining > daysLeft*(b.estimated.Value()/float64(total)) {
		return optional.Some(MojoDelayed)
	}
	return optional.Some(MojoOnTime)
}

// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package mojo

import (
	"time"

	"code.mojo.dev/mojo/modules/optional"
	"code.mojo.dev/mojo/modules/timeutil"
)

// now is the evaluation instant of every test in this package: 2024-03-10 10:00 UTC
var now = time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC)

func day(d int) timeutil.Date {
	return timeutil.NewDate(2024, time.March, d)
}

func report(d int, hours float64, note string) ReportSnapshot {
	return ReportSnapshot{Date: day(d), Hours: hours, Note: note}
}

func estimated(h float64) optional.Option[float64] {
	return optional.Some(h)
}

func done(b bool) optional.Option[bool] {
	return optional.Some(b)
}

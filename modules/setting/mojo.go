// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"time"

	"code.mojo.dev/mojo/modules/log"
)

// Mojo holds the service level windows and the evaluation location of the derived state engine
var Mojo = struct {
	ResponseTimeSLA      time.Duration
	GraceWindow          time.Duration
	IssueResponseTimeSLA time.Duration
	PhaseCacheSize       int
	TimeZone             string
}{
	ResponseTimeSLA:      time.Hour,
	GraceWindow:          48 * time.Hour,
	IssueResponseTimeSLA: 48 * time.Hour,
	PhaseCacheSize:       128,
	TimeZone:             "UTC",
}

func loadMojoFrom(rootCfg ConfigProvider) {
	sec := rootCfg.Section("mojo")
	Mojo.ResponseTimeSLA = sec.Key("RESPONSE_TIME_SLA").MustDuration(time.Hour)
	Mojo.GraceWindow = sec.Key("GRACE_WINDOW").MustDuration(48 * time.Hour)
	Mojo.IssueResponseTimeSLA = sec.Key("ISSUE_RESPONSE_TIME_SLA").MustDuration(48 * time.Hour)
	Mojo.PhaseCacheSize = sec.Key("PHASE_CACHE_SIZE").MustInt(128)
	Mojo.TimeZone = sec.Key("TIME_ZONE").MustString("UTC")

	loc, err := time.LoadLocation(Mojo.TimeZone)
	if err != nil {
		log.Warn("Unknown TIME_ZONE %q, using UTC: %v", Mojo.TimeZone, err)
		loc = time.UTC
		Mojo.TimeZone = "UTC"
	}
	DefaultUILocation = loc
}

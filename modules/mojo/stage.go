// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package mojo

import (
	"time"

	"code.mojo.dev/mojo/modules/timeutil"
)

// StageFields are the columns of an issue touched by a stage transition
type StageFields struct {
	Stage          Stage
	Origin         Origin
	LastMovingTime timeutil.TimeStamp
}

// Enter moves to stage and applies its entry side effects: triage restarts
// the response clock, backlog marks the origin. Other stages only set Stage.
func (f StageFields) Enter(stage string, now time.Time) (StageFields, error) {
	st, err := ParseStage(stage)
	if err != nil {
		return f, err
	}
	f.Stage = st
	switch st {
	case StageTriage:
		f.LastMovingTime = timeutil.TimeStampOf(now)
	case StageBacklog:
		f.Origin = OriginBacklog
	}
	return f, nil
}

// Copyright 2016 The Gogs Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package structs

import (
	"time"
)

// Issue represents an issue of a project
type Issue struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"project_id"`
	Title     string `json:"title"`
	// enum: feature,bug
	Kind string `json:"kind"`
	// enum: low,normal,high
	Priority string `json:"priority"`
	// enum: triage,backlog,working,on-hold
	Stage string `json:"stage"`
	// enum: new,backlog
	Origin          string     `json:"origin"`
	LastMovingTime  *time.Time `json:"last_moving_time"`
	IsDraft         bool       `json:"is_draft"`
	RelatedIssueIDs []int64    `json:"related_issue_ids"`
	Created         time.Time  `json:"created_at"`
	Updated         time.Time  `json:"updated_at"`

	// derived fields, computed at the time of the request
	DueDate       string        `json:"due_date,omitempty"`
	IsDone        bool          `json:"is_done"`
	PhaseID       *int64        `json:"phase_id"`
	Status        string        `json:"status"`
	Boarding      string        `json:"boarding"`
	BoardingValue int           `json:"boarding_value"`
	PriorityValue int           `json:"priority_value"`
	ResponseTime  *int64        `json:"response_time"`
	Phases        []*IssuePhase `json:"phases"`
}

// CreateIssueOption options to create one issue
type CreateIssueOption struct {
	// required:true
	ProjectID int64 `json:"project_id"`
	// required:true
	Title           string  `json:"title"`
	Kind            string  `json:"kind"`
	Priority        string  `json:"priority"`
	Stage           string  `json:"stage"`
	IsDraft         bool    `json:"is_draft"`
	RelatedIssueIDs []int64 `json:"related_issue_ids"`
}

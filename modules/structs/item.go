// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package structs

// IssuePhase is the work of an issue in one phase
type IssuePhase struct {
	ID             int64    `json:"id"`
	PhaseID        int64    `json:"phase_id"`
	Status         string   `json:"status"`
	StartDate      string   `json:"start_date,omitempty"`
	EndDate        string   `json:"end_date,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours"`
	HoursWorked    *float64 `json:"hours_worked"`
	RemainingHours *float64 `json:"mojo_remaining_hours"`
	Progress       *float64 `json:"mojo_progress"`
	AllEstimated   bool     `json:"all_estimated"`
	Boarding       *string  `json:"mojo_boarding"`
	Items          []*Item  `json:"items"`
}

// Item is the work of one member on an issue phase
type Item struct {
	ID                 int64    `json:"id"`
	IssuePhaseID       int64    `json:"issue_phase_id"`
	MemberID           int64    `json:"member_id"`
	StartDate          string   `json:"start_date,omitempty"`
	EndDate            string   `json:"end_date,omitempty"`
	EstimatedHours     *float64 `json:"estimated_hours"`
	IsDone             *bool    `json:"is_done"`
	Status             string   `json:"status"`
	Perspective        string   `json:"perspective"`
	HoursWorked        *float64 `json:"hours_worked"`
	ResponseTime       *int64   `json:"response_time"`
	GracePeriod        *int64   `json:"grace_period"`
	RemainingHours     *float64 `json:"mojo_remaining_hours"`
	Progress           *float64 `json:"mojo_progress"`
	DaysLeftToEstimate *int64   `json:"days_left_to_estimate"`
	Boarding           *string  `json:"mojo_boarding"`
}

// Dailyreport is the hours a member logged on an item for one day
type Dailyreport struct {
	ID     int64   `json:"id"`
	ItemID int64   `json:"item_id"`
	Date   string  `json:"date"`
	Hours  float64 `json:"hours"`
	Note   string  `json:"note"`
}

// Phase is a configured pipeline stage
type Phase struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Order int64  `json:"order"`
	Skill string `json:"skill"`
}

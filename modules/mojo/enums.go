// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package mojo

// ItemStatus is the work status of an item or an issue phase
type ItemStatus string

const (
	StatusToDo       ItemStatus = "to-do"
	StatusInProgress ItemStatus = "in-progress"
	StatusComplete   ItemStatus = "complete"
)

// IssueStatus is ItemStatus plus "done", which only an issue can be
type IssueStatus string

const (
	IssueStatusToDo       IssueStatus = "to-do"
	IssueStatusInProgress IssueStatus = "in-progress"
	IssueStatusComplete   IssueStatus = "complete"
	IssueStatusDone       IssueStatus = "done"
)

// Perspective is how an item's reporting looks today
type Perspective string

const (
	PerspectiveDue       Perspective = "Due"
	PerspectiveOverdue   Perspective = "Overdue"
	PerspectiveSubmitted Perspective = "Submitted"
)

// MojoBoarding classifies the burn rate of an item or an issue phase
type MojoBoarding string

const (
	MojoOnTime  MojoBoarding = "on-time"
	MojoDelayed MojoBoarding = "delayed"
	MojoAtRisk  MojoBoarding = "at-risk"
)

// IssueBoarding classifies an issue against its due date
type IssueBoarding string

const (
	IssueBoardingFrozen  IssueBoarding = "frozen"
	IssueBoardingDelayed IssueBoarding = "delayed"
	IssueBoardingOnTime  IssueBoarding = "on-time"
)

// Value is the sortable encoding of the boarding
func (b IssueBoarding) Value() int {
	switch b {
	case IssueBoardingFrozen:
		return 3
	case IssueBoardingDelayed:
		return 2
	case IssueBoardingOnTime:
		return 1
	}
	return 0
}

// ContainerBoarding classifies a project or a release
type ContainerBoarding string

const (
	ContainerOnTime  ContainerBoarding = "on-time"
	ContainerDelayed ContainerBoarding = "delayed"
	ContainerAtRisk  ContainerBoarding = "at-risk"
)

// Stage is where an issue sits in the intake flow
type Stage string

const (
	StageTriage  Stage = "triage"
	StageBacklog Stage = "backlog"
	StageWorking Stage = "working"
	StageOnHold  Stage = "on-hold"
)

// ParseStage validates s as a Stage
func ParseStage(s string) (Stage, error) {
	switch st := Stage(s); st {
	case StageTriage, StageBacklog, StageWorking, StageOnHold:
		return st, nil
	}
	return "", ErrInvalidStage{Stage: s}
}

// Origin records whether an issue ever went through the backlog
type Origin string

const (
	OriginNew     Origin = "new"
	OriginBacklog Origin = "backlog"
)

// Kind of an issue
type Kind string

const (
	KindFeature Kind = "feature"
	KindBug     Kind = "bug"
)

// ParseKind validates s as a Kind
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindFeature, KindBug:
		return k, nil
	}
	return "", ErrInvalidStatus{Field: "kind", Value: s}
}

// Priority of an issue
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// ParsePriority validates s as a Priority
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(s); p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return p, nil
	}
	return "", ErrInvalidStatus{Field: "priority", Value: s}
}

// Value ranks priorities, higher sorts first
func (p Priority) Value() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityNormal:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// ProjectStatus is the lifecycle of a project
type ProjectStatus string

const (
	ProjectQueued ProjectStatus = "queued"
	ProjectActive ProjectStatus = "active"
	ProjectOnHold ProjectStatus = "on-hold"
	ProjectDone   ProjectStatus = "done"
)

// ParseProjectStatus validates s as a ProjectStatus
func ParseProjectStatus(s string) (ProjectStatus, error) {
	switch st := ProjectStatus(s); st {
	case ProjectQueued, ProjectActive, ProjectOnHold, ProjectDone:
		return st, nil
	}
	return "", ErrInvalidStatus{Field: "status", Value: s}
}

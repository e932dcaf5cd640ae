// Copyright 2020 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cron

// Config represents a basic configuration interface that cron task
type Config interface {
	IsEnabled() bool
	DoRunAtStart() bool
	GetSchedule() string
}

// BaseConfig represents the basic config for a Cron task
type BaseConfig struct {
	Enabled    bool
	RunAtStart bool
	Schedule   string
}

// IsEnabled returns the enabled status
func (b *BaseConfig) IsEnabled() bool {
	return b.Enabled
}

// DoRunAtStart returns whether the task should be run at the start
func (b *BaseConfig) DoRunAtStart() bool {
	return b.RunAtStart
}

// GetSchedule returns the schedule for the base task
func (b *BaseConfig) GetSchedule() string {
	return b.Schedule
}

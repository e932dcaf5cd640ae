// Copyright 2014 The Gogs Authors. All rights reserved.
// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cron

import (
	"context"
	"errors"
	"sync"
	"time"

	"code.mojo.dev/mojo/modules/log"

	"github.com/go-co-op/gocron"
)

var (
	scheduler = gocron.NewScheduler(time.UTC)
	runCtx    context.Context

	initOnce sync.Once
	initErr  error
)

// Init registers the built-in tasks, it must run after the settings are loaded
func Init() error {
	initOnce.Do(func() {
		initErr = initBasicTasks()
	})
	return initErr
}

func addTaskToScheduler(ctx context.Context, task *Task) error {
	schedule := task.config.GetSchedule()
	// the first tag is the task name, the second one is its schedule
	if _, err := scheduler.Cron(schedule).Tag(task.Name, schedule).Do(task.Run, ctx); err != nil {
		log.Error("Unable to schedule cron task %s with %q: %v", task.Name, schedule, err)
		return err
	}
	return nil
}

// NewContext begins cron tasks, they run until ctx is done
func NewContext(ctx context.Context) error {
	if err := Init(); err != nil {
		return err
	}

	lock.Lock()
	defer lock.Unlock()
	if started {
		return errors.New("cron tasks are already running")
	}
	runCtx = ctx
	scheduler.SingletonModeAll()
	for _, task := range tasks {
		if !task.IsEnabled() {
			continue
		}
		if err := addTaskToScheduler(ctx, task); err != nil {
			scheduler.Clear()
			return err
		}
		if task.DoRunAtStart() {
			go task.Run(ctx)
		}
	}

	scheduler.StartAsync()
	started = true
	go func() {
		<-ctx.Done()
		lock.Lock()
		defer lock.Unlock()
		scheduler.Stop()
		scheduler.Clear()
		started = false
		log.Info("Cron tasks stopped")
	}()
	return nil
}

// TaskTableRow represents a task row in a tasktable
type TaskTableRow struct {
	Name      string    `json:"name"`
	Spec      string    `json:"spec"`
	Next      time.Time `json:"next"`
	Prev      time.Time `json:"prev"`
	ExecTimes int64     `json:"exec_times"`
	LastError string    `json:"last_error,omitempty"`
}

// TaskTable represents a table of tasks
type TaskTable []*TaskTableRow

// ListTasks returns all registered cron tasks, unscheduled ones have no spec
func ListTasks() TaskTable {
	jobMap := map[string]*gocron.Job{}
	for _, job := range scheduler.Jobs() {
		tags := job.Tags()
		if len(tags) == 0 { // should never happen
			continue
		}
		jobMap[tags[0]] = job
	}

	lock.Lock()
	defer lock.Unlock()

	tTable := make(TaskTable, 0, len(tasks))
	for _, task := range tasks {
		row := &TaskTableRow{Name: task.Name, Spec: "-"}
		if job, ok := jobMap[task.Name]; ok {
			if tags := job.Tags(); len(tags) > 1 {
				row.Spec = tags[1]
			}
			row.Next = job.NextRun()
			row.Prev = job.PreviousRun()
		}
		task.lock.Lock()
		row.ExecTimes = task.ExecTimes
		if task.LastError != nil {
			row.LastError = task.LastError.Error()
		}
		task.lock.Unlock()
		tTable = append(tTable, row)
	}
	return tTable
}

// Copyright 2020 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cron

import (
	"context"
	"fmt"
	"reflect"
	"runtime/debug"
	"sync"

	"code.mojo.dev/mojo/models/db"
	"code.mojo.dev/mojo/modules/log"
	"code.mojo.dev/mojo/modules/setting"
)

var (
	lock     = sync.Mutex{}
	started  = false
	tasks    = []*Task{}
	tasksMap = map[string]*Task{}
)

// Task represents a Cron task
type Task struct {
	lock      sync.Mutex
	Name      string
	config    Config
	fun       func(context.Context, Config) error
	ExecTimes int64
	LastError error
}

// DoRunAtStart returns if this task should run at the start
func (t *Task) DoRunAtStart() bool {
	return t.config.DoRunAtStart()
}

// IsEnabled returns if this task is enabled as cron task
func (t *Task) IsEnabled() bool {
	return t.config.IsEnabled()
}

// GetConfig will return a copy of the task's config
func (t *Task) GetConfig() Config {
	if reflect.TypeOf(t.config).Kind() == reflect.Ptr {
		// Pointer:
		return reflect.New(reflect.ValueOf(t.config).Elem().Type()).Interface().(Config)
	}
	// Not pointer:
	return reflect.New(reflect.TypeOf(t.config)).Elem().Interface().(Config)
}

// Run will run the task incrementing the cron counter
func (t *Task) Run(ctx context.Context) {
	t.lock.Lock()
	t.ExecTimes++
	t.lock.Unlock()

	err := t.run(ctx)
	t.lock.Lock()
	t.LastError = err
	t.lock.Unlock()

	switch {
	case err == nil:
		log.Debug("Cron task %s finished", t.Name)
	case db.IsErrCancelled(err):
		log.Warn("Cron task %s aborted: %v", t.Name, err)
	default:
		log.Error("Cron task %s failed: %v", t.Name, err)
	}
}

func (t *Task) run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PANIC whilst running task %s: %v\n%s", t.Name, r, debug.Stack())
		}
	}()
	return t.fun(ctx, t.config)
}

// GetTask gets the named task
func GetTask(name string) *Task {
	lock.Lock()
	defer lock.Unlock()

	return tasksMap[name]
}

// RegisterTask allows a task to be registered with the cron service,
// config is filled from the [cron.<name>] section
func RegisterTask(name string, config Config, fun func(context.Context, Config) error) error {
	log.Debug("Registering task: %s", name)

	if _, err := setting.GetCronSettings(name, config); err != nil {
		log.Error("Unable to register cron task with name: %s Error: %v", name, err)
		return err
	}

	task := &Task{
		Name:   name,
		config: config,
		fun:    fun,
	}
	lock.Lock()
	defer lock.Unlock()
	if _, has := tasksMap[task.Name]; has {
		log.Error("A task with this name: %s has already been registered", name)
		return fmt.Errorf("duplicate task with name: %s", task.Name)
	}

	if started && config.IsEnabled() {
		if err := addTaskToScheduler(runCtx, task); err != nil {
			return err
		}
	}

	tasks = append(tasks, task)
	tasksMap[task.Name] = task
	return nil
}

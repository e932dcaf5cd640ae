// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"

	"code.mojo.dev/mojo/modules/log"
	"code.mojo.dev/mojo/services/cron"

	"github.com/urfave/cli/v2"
)

// CmdCron represents the available cron sub-commands.
var CmdCron = &cli.Command{
	Name:  "cron",
	Usage: "Run the periodic tasks",
	Subcommands: []*cli.Command{
		{
			Name:        "start",
			Usage:       "Run the enabled tasks on their schedules until interrupted",
			Description: "Tasks are configured in [cron.<task>] sections of the config file with ENABLED, RUN_AT_START and SCHEDULE.",
			Action:      runCronStart,
		},
		{
			Name:   "run",
			Usage:  "Run one task now, whether it is enabled or not",
			Action: runCronRun,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "task",
					Usage:    "Name of the task, e.g. export_metrics",
					Required: true,
				},
			},
		},
		{
			Name:   "list",
			Usage:  "List the registered tasks",
			Action: runCronList,
		},
	},
}

func runCronStart(c *cli.Context) error {
	return runWithDB(c, func(ctx context.Context) error {
		if err := cron.NewContext(ctx); err != nil {
			return err
		}
		log.Info("Cron tasks started, waiting for a signal to stop")
		<-ctx.Done()
		return nil
	})
}

func runCronRun(c *cli.Context) error {
	return runWithDB(c, func(ctx context.Context) error {
		if err := cron.Init(); err != nil {
			return err
		}
		task := cron.GetTask(c.String("task"))
		if task == nil {
			return fmt.Errorf("unknown cron task %q", c.String("task"))
		}
		task.Run(ctx)
		if task.LastError != nil {
			return task.LastError
		}
		_, err := fmt.Fprintf(c.App.Writer, "Task %s finished\n", task.Name)
		return err
	})
}

func runCronList(c *cli.Context) error {
	if err := cron.Init(); err != nil {
		return err
	}
	return printJSON(c.App.Writer, cron.ListTasks())
}

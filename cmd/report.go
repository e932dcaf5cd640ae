// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"

	"code.mojo.dev/mojo/models/db"
	issues_model "code.mojo.dev/mojo/models/issues"
	api "code.mojo.dev/mojo/modules/structs"
	"code.mojo.dev/mojo/services/convert"

	"github.com/urfave/cli/v2"
)

// CmdReport represents the available daily report sub-commands.
var CmdReport = &cli.Command{
	Name:  "report",
	Usage: "Log the hours worked on items",
	Subcommands: []*cli.Command{
		cmdReportAdd,
		cmdReportUpdate,
		cmdReportList,
	},
}

var (
	flagReportHours = &cli.Float64Flag{
		Name:  "hours",
		Usage: "Hours worked that day",
	}
	flagReportNote = &cli.StringFlag{
		Name:  "note",
		Usage: "What was done, required when hours are logged",
	}

	cmdReportAdd = &cli.Command{
		Name:   "add",
		Usage:  "Record the daily report of an item",
		Action: runReportAdd,
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     "item",
				Usage:    "ID of the item",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "date",
				Usage:    "Day of the report, YYYY-MM-DD",
				Required: true,
			},
			flagReportHours,
			flagReportNote,
		},
	}

	cmdReportUpdate = &cli.Command{
		Name:   "update",
		Usage:  "Change the hours and note of a daily report",
		Action: runReportUpdate,
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     "id",
				Usage:    "ID of the daily report",
				Required: true,
			},
			flagReportHours,
			flagReportNote,
		},
	}

	cmdReportList = &cli.Command{
		Name:   "list",
		Usage:  "List the daily reports of an item",
		Action: runReportList,
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     "item",
				Usage:    "ID of the item",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "from",
				Usage: "First day, YYYY-MM-DD",
			},
			&cli.StringFlag{
				Name:  "to",
				Usage: "Last day, YYYY-MM-DD",
			},
		},
	}
)

func runReportAdd(c *cli.Context) error {
	date, err := dateFlag(c, "date")
	if err != nil {
		return err
	}
	return runWithDB(c, func(ctx context.Context) error {
		r, err := issues_model.RecordDailyReport(ctx, c.Int64("item"), date, c.Float64("hours"), c.String("note"))
		if err != nil {
			return err
		}
		return printJSON(c.App.Writer, convert.ToAPIDailyreport(r))
	})
}

func runReportUpdate(c *cli.Context) error {
	return runWithDB(c, func(ctx context.Context) error {
		r, err := issues_model.UpdateDailyReport(ctx, c.Int64("id"), c.Float64("hours"), c.String("note"))
		if err != nil {
			return err
		}
		return printJSON(c.App.Writer, convert.ToAPIDailyreport(r))
	})
}

func runReportList(c *cli.Context) error {
	from, err := dateFlag(c, "from")
	if err != nil {
		return err
	}
	to, err := dateFlag(c, "to")
	if err != nil {
		return err
	}
	return runWithDB(c, func(ctx context.Context) error {
		reports, err := db.Find[issues_model.Dailyreport](ctx, issues_model.FindDailyreportsOptions{
			ItemIDs: []int64{c.Int64("item")},
			From:    from,
			To:      to,
		})
		if err != nil {
			return err
		}
		result := make([]*api.Dailyreport, 0, len(reports))
		for _, r := range reports {
			result = append(result, convert.ToAPIDailyreport(r))
		}
		return printJSON(c.App.Writer, result)
	})
}

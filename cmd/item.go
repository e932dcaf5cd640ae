// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"strconv"
	"time"

	"code.mojo.dev/mojo/models/db"
	issues_model "code.mojo.dev/mojo/models/issues"
	"code.mojo.dev/mojo/modules/optional"
	"code.mojo.dev/mojo/modules/util"
	"code.mojo.dev/mojo/services/convert"

	"github.com/urfave/cli/v2"
)

var flagItemID = &cli.Int64Flag{
	Name:     "id",
	Usage:    "ID of the item",
	Required: true,
}

// CmdItem represents the available item sub-commands.
var CmdItem = &cli.Command{
	Name:  "item",
	Usage: "Assign, estimate and inspect the work items of issues",
	Subcommands: []*cli.Command{
		cmdItemAssign,
		cmdItemEstimate,
		cmdItemDone,
		cmdItemShow,
		cmdItemPhase,
		cmdItemPhases,
	},
}

var (
	cmdItemAssign = &cli.Command{
		Name:   "assign",
		Usage:  "Assign a member to an issue in a phase",
		Action: runItemAssign,
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     "issue",
				Usage:    "ID of the issue",
				Required: true,
			},
			&cli.Int64Flag{
				Name:  "phase-id",
				Usage: "ID of the phase",
			},
			&cli.StringFlag{
				Name:  "phase",
				Usage: "Title of the phase, used when --phase-id is not set",
			},
			&cli.Int64Flag{
				Name:     "member",
				Usage:    "ID of the member",
				Required: true,
			},
			flagNow,
		},
	}

	cmdItemEstimate = &cli.Command{
		Name:   "estimate",
		Usage:  "Schedule an item and set its hours estimate",
		Action: runItemEstimate,
		Flags: []cli.Flag{
			flagItemID,
			&cli.StringFlag{
				Name:     "start",
				Usage:    "First day of the item, YYYY-MM-DD",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "end",
				Usage:    "Last day of the item, YYYY-MM-DD",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "hours",
				Usage: `Estimated hours, "none" clears the estimate`,
			},
			flagNow,
		},
	}

	cmdItemDone = &cli.Command{
		Name:   "done",
		Usage:  "Set the done flag of an item",
		Action: runItemDone,
		Flags: []cli.Flag{
			flagItemID,
			&cli.StringFlag{
				Name:  "done",
				Usage: `true, false or "none" to clear it`,
				Value: "true",
			},
			flagNow,
		},
	}

	cmdItemShow = &cli.Command{
		Name:   "show",
		Usage:  "Show an item with its derived state",
		Action: runItemShow,
		Flags:  []cli.Flag{flagItemID, flagNow},
	}

	cmdItemPhase = &cli.Command{
		Name:   "phase",
		Usage:  "Show the rollup of an issue phase",
		Action: runItemPhase,
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     "id",
				Usage:    "ID of the issue phase",
				Required: true,
			},
			flagNow,
		},
	}

	cmdItemPhases = &cli.Command{
		Name:   "phases",
		Usage:  "List the configured phases",
		Action: runItemPhases,
	}
)

func printItem(ctx context.Context, c *cli.Context, item *issues_model.Item, now time.Time) error {
	state, err := issues_model.GetItemState(ctx, item.ID, now)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, convert.ToAPIItem(item, state))
}

func resolvePhaseID(ctx context.Context, c *cli.Context) (int64, error) {
	if c.IsSet("phase-id") {
		return c.Int64("phase-id"), nil
	}
	if !c.IsSet("phase") {
		return 0, util.NewInvalidArgumentErrorf("either --phase-id or --phase is required")
	}
	p, err := issues_model.GetPhaseByTitle(ctx, c.String("phase"))
	if err != nil {
		return 0, err
	}
	return p.ID, nil
}

func runItemAssign(c *cli.Context) error {
	now, err := evaluationTime(c)
	if err != nil {
		return err
	}
	return runWithDB(c, func(ctx context.Context) error {
		phaseID, err := resolvePhaseID(ctx, c)
		if err != nil {
			return err
		}
		item, err := issues_model.AssignItem(ctx, c.Int64("issue"), phaseID, c.Int64("member"), now)
		if err != nil {
			return err
		}
		return printItem(ctx, c, item, now)
	})
}

func runItemEstimate(c *cli.Context) error {
	now, err := evaluationTime(c)
	if err != nil {
		return err
	}
	start, err := dateFlag(c, "start")
	if err != nil {
		return err
	}
	end, err := dateFlag(c, "end")
	if err != nil {
		return err
	}
	hours, err := hoursFlag(c, "hours")
	if err != nil {
		return err
	}
	return runWithDB(c, func(ctx context.Context) error {
		item, err := issues_model.Estimate(ctx, c.Int64("id"), start, end, hours, now)
		if err != nil {
			return err
		}
		return printItem(ctx, c, item, now)
	})
}

func runItemDone(c *cli.Context) error {
	now, err := evaluationTime(c)
	if err != nil {
		return err
	}
	var done optional.Option[bool]
	if v := c.String("done"); v != "none" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return util.NewInvalidArgumentErrorf("invalid --done %q", v)
		}
		done = optional.Some(b)
	}
	return runWithDB(c, func(ctx context.Context) error {
		item, err := issues_model.SetItemDone(ctx, c.Int64("id"), done)
		if err != nil {
			return err
		}
		return printItem(ctx, c, item, now)
	})
}

func runItemShow(c *cli.Context) error {
	now, err := evaluationTime(c)
	if err != nil {
		return err
	}
	return runWithDB(c, func(ctx context.Context) error {
		item, err := issues_model.GetItemByID(ctx, c.Int64("id"))
		if err != nil {
			return err
		}
		return printItem(ctx, c, item, now)
	})
}

func runItemPhase(c *cli.Context) error {
	now, err := evaluationTime(c)
	if err != nil {
		return err
	}
	return runWithDB(c, func(ctx context.Context) error {
		state, err := issues_model.GetIssuePhaseState(ctx, c.Int64("id"), now)
		if err != nil {
			return err
		}
		items, err := db.Find[issues_model.Item](ctx, issues_model.FindItemsOptions{IssuePhaseIDs: []int64{state.ID}})
		if err != nil {
			return err
		}
		beans := make(map[int64]*issues_model.Item, len(items))
		for _, item := range items {
			beans[item.ID] = item
		}
		return printJSON(c.App.Writer, convert.ToAPIIssuePhase(state, beans))
	})
}

func runItemPhases(c *cli.Context) error {
	return runWithDB(c, func(ctx context.Context) error {
		phases, err := issues_model.GetPhases(ctx)
		if err != nil {
			return err
		}
		return printJSON(c.App.Writer, convert.ToAPIPhases(phases))
	})
}

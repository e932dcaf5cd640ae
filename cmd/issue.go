// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"
	"time"

	"code.mojo.dev/mojo/models/db"
	issues_model "code.mojo.dev/mojo/models/issues"
	"code.mojo.dev/mojo/modules/mojo"
	api "code.mojo.dev/mojo/modules/structs"
	"code.mojo.dev/mojo/services/convert"

	"github.com/urfave/cli/v2"
)

var flagIssueID = &cli.Int64Flag{
	Name:     "id",
	Usage:    "ID of the issue",
	Required: true,
}

// CmdIssue represents the available issue sub-commands.
var CmdIssue = &cli.Command{
	Name:  "issue",
	Usage: "Create, move and inspect issues",
	Subcommands: []*cli.Command{
		cmdIssueCreate,
		cmdIssueShow,
		cmdIssueList,
		cmdIssueStage,
		cmdIssueFinalize,
		cmdIssueRelate,
		cmdIssueUnrelate,
		cmdIssueDelete,
	},
}

var (
	cmdIssueCreate = &cli.Command{
		Name:   "create",
		Usage:  "Create a new issue",
		Action: runIssueCreate,
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     "project",
				Usage:    "ID of the project the issue belongs to",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "title",
				Usage:    "Issue title",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "kind",
				Usage: "feature or bug",
				Value: string(mojo.KindFeature),
			},
			&cli.StringFlag{
				Name:  "priority",
				Usage: "low, normal or high",
				Value: string(mojo.PriorityNormal),
			},
			&cli.StringFlag{
				Name:  "stage",
				Usage: "Initial stage: triage, backlog, working or on-hold",
				Value: string(mojo.StageTriage),
			},
			&cli.BoolFlag{
				Name:  "draft",
				Usage: "Create a draft, the related issue check runs on finalize",
			},
			&cli.Int64SliceFlag{
				Name:  "related",
				Usage: "IDs of related issues",
			},
			flagNow,
		},
	}

	cmdIssueShow = &cli.Command{
		Name:   "show",
		Usage:  "Show an issue with its derived state",
		Action: runIssueShow,
		Flags:  []cli.Flag{flagIssueID, flagNow},
	}

	cmdIssueList = &cli.Command{
		Name:   "list",
		Usage:  "List issues",
		Action: runIssueList,
		Flags: []cli.Flag{
			&cli.Int64SliceFlag{
				Name:  "project",
				Usage: "Only issues of these projects",
			},
			&cli.StringFlag{
				Name:  "stage",
				Usage: "Only issues in this stage",
			},
			&cli.StringFlag{
				Name:  "keyword",
				Usage: "Only issues whose title contains the keyword",
			},
			flagNow,
		},
	}

	cmdIssueStage = &cli.Command{
		Name:   "stage",
		Usage:  "Move an issue to another stage",
		Action: runIssueStage,
		Flags: []cli.Flag{
			flagIssueID,
			&cli.StringFlag{
				Name:     "to",
				Usage:    "Target stage: triage, backlog, working or on-hold",
				Required: true,
			},
			flagNow,
		},
	}

	cmdIssueFinalize = &cli.Command{
		Name:   "finalize",
		Usage:  "Check a draft issue and clear its draft flag",
		Action: runIssueFinalize,
		Flags:  []cli.Flag{flagIssueID, flagNow},
	}

	flagRelated = &cli.Int64SliceFlag{
		Name:     "related",
		Usage:    "IDs of the related issues",
		Required: true,
	}

	cmdIssueRelate = &cli.Command{
		Name:   "relate",
		Usage:  "Relate issues to an issue",
		Action: runIssueRelate,
		Flags:  []cli.Flag{flagIssueID, flagRelated, flagNow},
	}

	cmdIssueUnrelate = &cli.Command{
		Name:   "unrelate",
		Usage:  "Remove related issues from an issue",
		Action: runIssueUnrelate,
		Flags:  []cli.Flag{flagIssueID, flagRelated, flagNow},
	}

	cmdIssueDelete = &cli.Command{
		Name:   "delete",
		Usage:  "Delete an issue with its phases, items, reports and subscriptions",
		Action: runIssueDelete,
		Flags:  []cli.Flag{flagIssueID},
	}
)

func printIssue(ctx context.Context, c *cli.Context, issue *issues_model.Issue, now time.Time) error {
	state, err := issues_model.GetIssueState(ctx, issue.ID, now)
	if err != nil {
		return err
	}
	apiIssue, err := convert.ToAPIIssue(ctx, issue, state)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, apiIssue)
}

func runIssueCreate(c *cli.Context) error {
	now, err := evaluationTime(c)
	if err != nil {
		return err
	}
	return runWithDB(c, func(ctx context.Context) error {
		issue := &issues_model.Issue{
			ProjectID: c.Int64("project"),
			Title:     c.String("title"),
			Kind:      mojo.Kind(c.String("kind")),
			Priority:  mojo.Priority(c.String("priority")),
			Stage:     mojo.Stage(c.String("stage")),
			IsDraft:   c.Bool("draft"),
		}
		if err := issues_model.CreateIssue(ctx, issue, c.Int64Slice("related"), now); err != nil {
			return err
		}
		return printIssue(ctx, c, issue, now)
	})
}

func runIssueShow(c *cli.Context) error {
	now, err := evaluationTime(c)
	if err != nil {
		return err
	}
	return runWithDB(c, func(ctx context.Context) error {
		issue, err := issues_model.GetIssueByID(ctx, c.Int64("id"))
		if err != nil {
			return err
		}
		return printIssue(ctx, c, issue, now)
	})
}

func runIssueList(c *cli.Context) error {
	now, err := evaluationTime(c)
	if err != nil {
		return err
	}
	opts := issues_model.FindIssuesOptions{
		ProjectIDs: c.Int64Slice("project"),
		Keyword:    c.String("keyword"),
	}
	if c.IsSet("stage") {
		if opts.Stage, err = mojo.ParseStage(c.String("stage")); err != nil {
			return err
		}
	}
	return runWithDB(c, func(ctx context.Context) error {
		issues, err := db.Find[issues_model.Issue](ctx, opts)
		if err != nil {
			return err
		}
		result := make([]*api.Issue, 0, len(issues))
		for _, issue := range issues {
			state, err := issues_model.GetIssueState(ctx, issue.ID, now)
			if err != nil {
				return err
			}
			apiIssue, err := convert.ToAPIIssue(ctx, issue, state)
			if err != nil {
				return err
			}
			result = append(result, apiIssue)
		}
		return printJSON(c.App.Writer, result)
	})
}

func runIssueStage(c *cli.Context) error {
	now, err := evaluationTime(c)
	if err != nil {
		return err
	}
	return runWithDB(c, func(ctx context.Context) error {
		issue, err := issues_model.SetStage(ctx, c.Int64("id"), c.String("to"), now)
		if err != nil {
			return err
		}
		return printIssue(ctx, c, issue, now)
	})
}

func runIssueFinalize(c *cli.Context) error {
	now, err := evaluationTime(c)
	if err != nil {
		return err
	}
	return runWithDB(c, func(ctx context.Context) error {
		issue, err := issues_model.FinalizeIssue(ctx, c.Int64("id"))
		if err != nil {
			return err
		}
		return printIssue(ctx, c, issue, now)
	})
}

func runIssueRelate(c *cli.Context) error {
	return runIssueRelation(c, issues_model.RelateIssues)
}

func runIssueUnrelate(c *cli.Context) error {
	return runIssueRelation(c, issues_model.UnrelateIssues)
}

func runIssueRelation(c *cli.Context, change func(ctx context.Context, issueID int64, relatedIDs ...int64) error) error {
	now, err := evaluationTime(c)
	if err != nil {
		return err
	}
	return runWithDB(c, func(ctx context.Context) error {
		if err := change(ctx, c.Int64("id"), c.Int64Slice("related")...); err != nil {
			return err
		}
		issue, err := issues_model.GetIssueByID(ctx, c.Int64("id"))
		if err != nil {
			return err
		}
		return printIssue(ctx, c, issue, now)
	})
}

func runIssueDelete(c *cli.Context) error {
	return runWithDB(c, func(ctx context.Context) error {
		if err := issues_model.DeleteIssue(ctx, c.Int64("id")); err != nil {
			return err
		}
		_, err := fmt.Fprintf(c.App.Writer, "Deleted issue %d\n", c.Int64("id"))
		return err
	})
}

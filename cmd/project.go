// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"
	"time"

	"code.mojo.dev/mojo/models/db"
	project_model "code.mojo.dev/mojo/models/project"
	"code.mojo.dev/mojo/modules/mojo"
	api "code.mojo.dev/mojo/modules/structs"
	"code.mojo.dev/mojo/modules/timeutil"
	"code.mojo.dev/mojo/modules/util"
	"code.mojo.dev/mojo/services/convert"

	"github.com/urfave/cli/v2"
)

var flagProjectID = &cli.Int64Flag{
	Name:     "id",
	Usage:    "ID of the project",
	Required: true,
}

// CmdProject represents the available project sub-commands.
var CmdProject = &cli.Command{
	Name:  "project",
	Usage: "Manage projects and show their boarding",
	Subcommands: []*cli.Command{
		{
			Name:   "create",
			Usage:  "Create a new project",
			Action: runProjectCreate,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "title",
					Usage:    "Project title",
					Required: true,
				},
				&cli.Int64Flag{
					Name:  "release",
					Usage: "ID of the release the project ships in",
				},
				&cli.StringFlag{
					Name:  "status",
					Usage: "queued, active, on-hold or done",
					Value: string(mojo.ProjectQueued),
				},
				flagNow,
			},
		},
		{
			Name:   "status",
			Usage:  "Change the status of a project",
			Action: runProjectStatus,
			Flags: []cli.Flag{
				flagProjectID,
				&cli.StringFlag{
					Name:     "to",
					Usage:    "queued, active, on-hold or done",
					Required: true,
				},
				flagNow,
			},
		},
		{
			Name:   "show",
			Usage:  "Show a project with its boarding",
			Action: runProjectShow,
			Flags:  []cli.Flag{flagProjectID, flagNow},
		},
		{
			Name:   "list",
			Usage:  "List projects",
			Action: runProjectList,
			Flags: []cli.Flag{
				&cli.Int64Flag{
					Name:  "release",
					Usage: "Only projects of this release",
				},
				&cli.StringFlag{
					Name:  "status",
					Usage: "Only projects with this status",
				},
				flagNow,
			},
		},
		{
			Name:   "delete",
			Usage:  "Delete a project",
			Action: runProjectDelete,
			Flags:  []cli.Flag{flagProjectID},
		},
	},
}

// CmdRelease represents the available release sub-commands.
var CmdRelease = &cli.Command{
	Name:  "release",
	Usage: "Manage releases and show their boarding",
	Subcommands: []*cli.Command{
		{
			Name:   "create",
			Usage:  "Create a new release",
			Action: runReleaseCreate,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "title",
					Usage:    "Release title",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "cutoff",
					Usage: "RFC 3339 instant after which the release is late",
				},
				flagNow,
			},
		},
		{
			Name:   "show",
			Usage:  "Show a release with its boarding",
			Action: runReleaseShow,
			Flags: []cli.Flag{
				&cli.Int64Flag{
					Name:     "id",
					Usage:    "ID of the release",
					Required: true,
				},
				flagNow,
			},
		},
	},
}

func printProject(ctx context.Context, c *cli.Context, p *project_model.Project, now time.Time) error {
	apiProject, err := convert.ToAPIProject(ctx, p, now)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, apiProject)
}

func runProjectCreate(c *cli.Context) error {
	now, err := evaluationTime(c)
	if err != nil {
		return err
	}
	return runWithDB(c, func(ctx context.Context) error {
		p := &project_model.Project{
			Title:     c.String("title"),
			ReleaseID: c.Int64("release"),
			Status:    mojo.ProjectStatus(c.String("status")),
		}
		if err := project_model.CreateProject(ctx, p); err != nil {
			return err
		}
		return printProject(ctx, c, p, now)
	})
}

func runProjectStatus(c *cli.Context) error {
	now, err := evaluationTime(c)
	if err != nil {
		return err
	}
	return runWithDB(c, func(ctx context.Context) error {
		p, err := project_model.ChangeProjectStatus(ctx, c.Int64("id"), c.String("to"))
		if err != nil {
			return err
		}
		return printProject(ctx, c, p, now)
	})
}

func runProjectShow(c *cli.Context) error {
	now, err := evaluationTime(c)
	if err != nil {
		return err
	}
	return runWithDB(c, func(ctx context.Context) error {
		p, err := project_model.GetProjectByID(ctx, c.Int64("id"))
		if err != nil {
			return err
		}
		return printProject(ctx, c, p, now)
	})
}

func runProjectList(c *cli.Context) error {
	now, err := evaluationTime(c)
	if err != nil {
		return err
	}
	opts := project_model.SearchOptions{ReleaseID: c.Int64("release")}
	if c.IsSet("status") {
		if opts.Status, err = mojo.ParseProjectStatus(c.String("status")); err != nil {
			return err
		}
	}
	return runWithDB(c, func(ctx context.Context) error {
		projects, err := db.Find[project_model.Project](ctx, opts)
		if err != nil {
			return err
		}
		result := make([]*api.Project, 0, len(projects))
		for _, p := range projects {
			apiProject, err := convert.ToAPIProject(ctx, p, now)
			if err != nil {
				return err
			}
			result = append(result, apiProject)
		}
		return printJSON(c.App.Writer, result)
	})
}

func runProjectDelete(c *cli.Context) error {
	return runWithDB(c, func(ctx context.Context) error {
		if err := project_model.DeleteProjectByID(ctx, c.Int64("id")); err != nil {
			return err
		}
		_, err := fmt.Fprintf(c.App.Writer, "Deleted project %d\n", c.Int64("id"))
		return err
	})
}

func runReleaseCreate(c *cli.Context) error {
	now, err := evaluationTime(c)
	if err != nil {
		return err
	}
	r := &project_model.Release{Title: c.String("title")}
	if c.IsSet("cutoff") {
		cutoff, err := time.Parse(time.RFC3339, c.String("cutoff"))
		if err != nil {
			return util.NewInvalidArgumentErrorf("invalid --cutoff %q: %v", c.String("cutoff"), err)
		}
		r.Cutoff = timeutil.TimeStampOf(cutoff)
	}
	return runWithDB(c, func(ctx context.Context) error {
		if err := project_model.CreateRelease(ctx, r); err != nil {
			return err
		}
		apiRelease, err := convert.ToAPIRelease(ctx, r, now)
		if err != nil {
			return err
		}
		return printJSON(c.App.Writer, apiRelease)
	})
}

func runReleaseShow(c *cli.Context) error {
	now, err := evaluationTime(c)
	if err != nil {
		return err
	}
	return runWithDB(c, func(ctx context.Context) error {
		r, err := project_model.GetReleaseByID(ctx, c.Int64("id"))
		if err != nil {
			return err
		}
		apiRelease, err := convert.ToAPIRelease(ctx, r, now)
		if err != nil {
			return err
		}
		return printJSON(c.App.Writer, apiRelease)
	})
}

// Copyright 2018 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"
	"os"

	"code.mojo.dev/mojo/models/db"
	issues_model "code.mojo.dev/mojo/models/issues"
	"code.mojo.dev/mojo/modules/log"
	"code.mojo.dev/mojo/modules/setting"

	"github.com/urfave/cli/v2"
)

// CmdMigrate represents the available migrate sub-command.
var CmdMigrate = &cli.Command{
	Name:        "migrate",
	Usage:       "Migrate the database",
	Description: "This is a command for migrating the database, so that you can run other commands against it. It can also load the phase configuration.",
	Action:      runMigrate,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "phases",
			Usage: "YAML file with the phase configuration to create or update",
		},
	},
}

func runMigrate(c *cli.Context) error {
	ctx, cancel := installSignals()
	defer cancel()

	log.Info("Log path: %s", setting.Log.FileName)
	log.Info("Configuration file: %s", setting.CustomConf)

	if err := db.InitEngineWithMigration(ctx); err != nil {
		log.Fatal("Failed to initialize ORM engine: %v", err)
		return err
	}
	defer db.UnsetDefaultEngine()

	if c.IsSet("phases") {
		if err := loadPhases(ctx, c.String("phases")); err != nil {
			return err
		}
	}
	_, _ = fmt.Fprintf(c.App.Writer, "Migrated %d tables\n", len(db.Tables()))
	return nil
}

func loadPhases(ctx context.Context, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read phases: %w", err)
	}
	phases, err := issues_model.ParsePhasesYAML(data)
	if err != nil {
		return err
	}
	if err := issues_model.UpsertPhases(ctx, phases); err != nil {
		return fmt.Errorf("upsert phases: %w", err)
	}
	log.Info("Loaded %d phases from %s", len(phases), file)
	return nil
}

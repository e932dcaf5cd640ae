// Copyright 2014 The Gogs Authors. All rights reserved.
// Copyright 2016 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"

	"code.mojo.dev/mojo/models/db"
	"code.mojo.dev/mojo/modules/log"

	"github.com/urfave/cli/v2"
)

// CmdDump represents the available dump sub-command.
var CmdDump = &cli.Command{
	Name:        "dump",
	Usage:       "Dump database tables as YAML",
	Description: "Dump writes every row of the chosen tables, or of all tables, into one <table>.yml file per table.",
	Action:      runDump,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "dir",
			Aliases: []string{"d"},
			Value:   "dump",
			Usage:   "Directory to write the YAML files to",
		},
		&cli.StringSliceFlag{
			Name:    "tables",
			Aliases: []string{"t"},
			Usage:   "Tables to dump, by table or model name (defaults to all)",
		},
	},
}

func runDump(c *cli.Context) error {
	return runWithDB(c, func(ctx context.Context) error {
		beans, err := db.NamesToBean(c.StringSlice("tables")...)
		if err != nil {
			return err
		}
		if err := db.DumpTablesAsYAML(c.String("dir"), beans...); err != nil {
			return fmt.Errorf("dump tables: %w", err)
		}
		log.Info("Dumped %d tables to %s", len(beans), c.String("dir"))
		_, _ = fmt.Fprintf(c.App.Writer, "Dumped %d tables to %s\n", len(beans), c.String("dir"))
		return nil
	})
}

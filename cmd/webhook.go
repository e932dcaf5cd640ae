// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"code.mojo.dev/mojo/modules/log"
	"code.mojo.dev/mojo/modules/util"
	"code.mojo.dev/mojo/services/mention"

	"github.com/urfave/cli/v2"
)

// CmdWebhook represents the available webhook sub-commands.
var CmdWebhook = &cli.Command{
	Name:  "webhook",
	Usage: "Process webhook deliveries",
	Subcommands: []*cli.Command{
		{
			Name:        "mention",
			Usage:       "Process a mention webhook body",
			Description: "Reads a JSON body with subscribable_id and member_ids or text containing @<id> mentions. Redelivering the same body is harmless.",
			Action:      runWebhookMention,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "file",
					Aliases: []string{"f"},
					Usage:   `File with the webhook body, "-" reads stdin`,
					Value:   "-",
				},
			},
		},
	},
}

func readBody(c *cli.Context) ([]byte, error) {
	file := c.String("file")
	if file == "-" {
		return io.ReadAll(c.App.Reader)
	}
	bs, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read webhook body: %w", err)
	}
	return bs, nil
}

func runWebhookMention(c *cli.Context) error {
	body, err := readBody(c)
	if err != nil {
		return err
	}
	return runWithDB(c, func(ctx context.Context) error {
		res, err := mention.HandlePayload(ctx, body)
		if err != nil {
			log.Error("mention webhook (%s): %v", util.ErrorKind(err), err)
			return err
		}
		return printJSON(c.App.Writer, res)
	})
}

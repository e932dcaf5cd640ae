// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"

	"code.mojo.dev/mojo/models/subscription"
	"code.mojo.dev/mojo/services/convert"
	"code.mojo.dev/mojo/services/mention"

	"github.com/urfave/cli/v2"
)

var (
	flagSubscribableID = &cli.Int64Flag{
		Name:     "id",
		Usage:    "ID of the subscribable",
		Required: true,
	}
	flagViewerID = &cli.Int64Flag{
		Name:     "viewer",
		Usage:    "ID of the viewing member",
		Required: true,
	}
)

// CmdSubscription represents the available read tracking sub-commands.
var CmdSubscription = &cli.Command{
	Name:    "subscription",
	Aliases: []string{"sub"},
	Usage:   "Track what members follow and have read",
	Subcommands: []*cli.Command{
		{
			Name:   "see",
			Usage:  "Mark a subscribable as seen by the viewer",
			Action: runSubscriptionSee,
			Flags:  []cli.Flag{flagSubscribableID, flagViewerID, flagNow},
		},
		{
			Name:   "unsee",
			Usage:  "Mark a subscribable as unseen by the viewer",
			Action: runSubscriptionChange(subscription.Unsee),
			Flags:  []cli.Flag{flagSubscribableID, flagViewerID},
		},
		{
			Name:   "subscribe",
			Usage:  "Subscribe the viewer to a subscribable",
			Action: runSubscriptionSubscribe,
			Flags:  []cli.Flag{flagSubscribableID, flagViewerID},
		},
		{
			Name:   "unsubscribe",
			Usage:  "Unsubscribe the viewer from a subscribable",
			Action: runSubscriptionChange(subscription.Unsubscribe),
			Flags:  []cli.Flag{flagSubscribableID, flagViewerID},
		},
		{
			Name:   "mention",
			Usage:  "Notify members about a subscribable once",
			Action: runSubscriptionMention,
			Flags: []cli.Flag{
				flagSubscribableID,
				&cli.Int64SliceFlag{
					Name:     "member",
					Usage:    "IDs of the mentioned members",
					Required: true,
				},
			},
		},
		{
			Name:   "show",
			Usage:  "Show how the viewer follows a subscribable",
			Action: runSubscriptionChange(nil),
			Flags:  []cli.Flag{flagSubscribableID, flagViewerID},
		},
		{
			Name:   "unread",
			Usage:  "List what the viewer has not read yet",
			Action: runSubscriptionUnread,
			Flags:  []cli.Flag{flagViewerID},
		},
	},
}

func printSubscription(ctx context.Context, c *cli.Context) error {
	s, err := convert.ToAPISubscription(ctx, c.Int64("id"), c.Int64("viewer"))
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, s)
}

// runSubscriptionChange applies change, if any, and prints the resulting subscription
func runSubscriptionChange(change func(ctx context.Context, subscribableID, viewerID int64) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		return runWithDB(c, func(ctx context.Context) error {
			if change != nil {
				if err := change(ctx, c.Int64("id"), c.Int64("viewer")); err != nil {
					return err
				}
			}
			return printSubscription(ctx, c)
		})
	}
}

func runSubscriptionSee(c *cli.Context) error {
	now, err := evaluationTime(c)
	if err != nil {
		return err
	}
	return runWithDB(c, func(ctx context.Context) error {
		if _, err := subscription.See(ctx, c.Int64("id"), c.Int64("viewer"), now); err != nil {
			return err
		}
		return printSubscription(ctx, c)
	})
}

func runSubscriptionSubscribe(c *cli.Context) error {
	return runWithDB(c, func(ctx context.Context) error {
		if _, err := subscription.Subscribe(ctx, c.Int64("id"), c.Int64("viewer")); err != nil {
			return err
		}
		return printSubscription(ctx, c)
	})
}

func runSubscriptionMention(c *cli.Context) error {
	return runWithDB(c, func(ctx context.Context) error {
		res, err := mention.Notify(ctx, &mention.Payload{
			SubscribableID: c.Int64("id"),
			MemberIDs:      c.Int64Slice("member"),
		})
		if err != nil {
			return err
		}
		return printJSON(c.App.Writer, res)
	})
}

func runSubscriptionUnread(c *cli.Context) error {
	return runWithDB(c, func(ctx context.Context) error {
		list, err := convert.ToAPIUnreadList(ctx, c.Int64("viewer"))
		if err != nil {
			return err
		}
		return printJSON(c.App.Writer, list)
	})
}

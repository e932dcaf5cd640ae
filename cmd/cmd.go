// Copyright 2018 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd provides subcommands to the mojo binary
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"code.mojo.dev/mojo/models/db"
	"code.mojo.dev/mojo/modules/json"
	"code.mojo.dev/mojo/modules/log"
	"code.mojo.dev/mojo/modules/optional"
	"code.mojo.dev/mojo/modules/setting"
	"code.mojo.dev/mojo/modules/timeutil"
	"code.mojo.dev/mojo/modules/util"

	"github.com/urfave/cli/v2"
)

// argsSet checks that all the required arguments are set. args is a list of
// arguments that must be set in the passed Context.
func argsSet(c *cli.Context, args ...string) error {
	for _, a := range args {
		if !c.IsSet(a) {
			return errors.New(a + " is not set")
		}

		if c.Value(a) == "" {
			return errors.New(a + " is required")
		}
	}
	return nil
}

func initDB(ctx context.Context) error {
	if setting.Database.Type == "" {
		log.Fatal(`Database settings are missing from the configuration file: %q.
Ensure you are running in the correct environment or set the correct configuration file with -c.`, setting.CustomConf)
	}
	if err := db.InitEngine(ctx); err != nil {
		return fmt.Errorf("unable to initialize the database using the configuration in %q. Error: %w", setting.CustomConf, err)
	}
	return nil
}

func installSignals() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		// install notify
		signalChannel := make(chan os.Signal, 1)

		signal.Notify(
			signalChannel,
			syscall.SIGINT,
			syscall.SIGTERM,
		)
		select {
		case <-signalChannel:
		case <-ctx.Done():
		}
		cancel()
		signal.Reset()
	}()

	return ctx, cancel
}

// runWithDB opens the configured database for the duration of f
func runWithDB(c *cli.Context, f func(ctx context.Context) error) error {
	ctx, cancel := installSignals()
	defer cancel()
	if err := initDB(ctx); err != nil {
		return err
	}
	defer db.UnsetDefaultEngine()
	return f(ctx)
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v any) error {
	bs, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(bs))
	return err
}

// evaluationTime is the instant commands compute at, --now overrides the clock
func evaluationTime(c *cli.Context) (time.Time, error) {
	if !c.IsSet("now") {
		return timeutil.Now(), nil
	}
	now, err := time.Parse(time.RFC3339, c.String("now"))
	if err != nil {
		return time.Time{}, util.NewInvalidArgumentErrorf("invalid --now %q: %v", c.String("now"), err)
	}
	return now, nil
}

var flagNow = &cli.StringFlag{
	Name:  "now",
	Usage: "Evaluate at this RFC 3339 instant instead of the current time",
}

// dateFlag parses the named flag as a calendar date, zero when unset
func dateFlag(c *cli.Context, name string) (timeutil.Date, error) {
	if !c.IsSet(name) || c.String(name) == "" {
		return 0, nil
	}
	d, err := timeutil.ParseDate(c.String(name))
	if err != nil {
		return 0, util.NewInvalidArgumentErrorf("invalid --%s %q: %v", name, c.String(name), err)
	}
	return d, nil
}

// hoursFlag reads an optional hours value, "none" clears it
func hoursFlag(c *cli.Context, name string) (optional.Option[float64], error) {
	if !c.IsSet(name) || c.String(name) == "none" {
		return optional.None[float64](), nil
	}
	h, err := strconv.ParseFloat(c.String(name), 64)
	if err != nil {
		return optional.None[float64](), util.NewInvalidArgumentErrorf("invalid --%s %q", name, c.String(name))
	}
	return optional.Some(h), nil
}

// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strings"

	"code.mojo.dev/mojo/modules/log"
	"code.mojo.dev/mojo/modules/setting"

	"github.com/urfave/cli/v2"
)

// cmdHelp is our own help subcommand with more information
func cmdHelp() *cli.Command {
	c := &cli.Command{
		Name:      "help",
		Aliases:   []string{"h"},
		Usage:     "Shows a list of commands or help for one command",
		ArgsUsage: "[command]",
		Action: func(c *cli.Context) (err error) {
			lineage := c.Lineage() // The order is from child to parent: help, doctor, Gitea, {Command:nil}
			targetCmdIdx := 0
			if c.Command.Name == "help" {
				targetCmdIdx = 1
			}
			if lineage[targetCmdIdx+1].Command != nil {
				err = cli.ShowCommandHelp(lineage[targetCmdIdx+1], lineage[targetCmdIdx].Command.Name)
			} else {
				err = cli.ShowAppHelp(c)
			}
			_, _ = fmt.Fprintf(c.App.Writer, `
DEFAULT CONFIGURATION:
   ConfigFile: %s

`, setting.CustomConf)
			return err
		},
	}
	return c
}

func appGlobalFlags() []cli.Flag {
	return []cli.Flag{
		// make the builtin flags at the top
		cli.HelpFlag,

		// shared configuration flags, they are for global and for each sub-command at the same time
		// eg: such command is valid: "./mojo --config /tmp/app.ini issue show --config /tmp/app.ini", while it's discouraged indeed
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   setting.CustomConf,
			Usage:   "Set custom config file (defaults to 'custom/conf/app.ini')",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Only log fatal errors",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log everything down to trace",
		},
	}
}

func prepareSubcommandWithConfig(command *cli.Command, globalFlags []cli.Flag) {
	command.Flags = append(append([]cli.Flag{}, globalFlags...), command.Flags...)
	command.Action = prepareConfigAction(command.Action)
	command.HideHelp = true
	if command.Name != "help" {
		command.Subcommands = append(command.Subcommands, cmdHelp())
	}
	for i := range command.Subcommands {
		prepareSubcommandWithConfig(command.Subcommands[i], globalFlags)
	}
}

// prepareConfigAction wraps the Action to load the config file before running it
func prepareConfigAction(action cli.ActionFunc) func(ctx *cli.Context) error {
	return func(ctx *cli.Context) error {
		var customConf string
		// from children to parent, check the global flags
		for _, curCtx := range ctx.Lineage() {
			if curCtx.IsSet("config") && customConf == "" {
				customConf = curCtx.String("config")
			}
		}
		if err := setting.InitCfgProvider(customConf); err != nil {
			return err
		}
		if level := consoleLevel(ctx, log.UNDEFINED); level != log.UNDEFINED {
			log.Init(log.WriterMode{Level: level, Mode: "console"})
		}
		if action == nil && ctx.Command.Subcommands != nil {
			return cli.ShowSubcommandHelp(ctx)
		}
		if action == nil {
			return nil
		}
		return action(ctx)
	}
}

type AppVersion struct {
	Version string
	Extra   string
}

func NewMainApp(appVer AppVersion) *cli.App {
	app := cli.NewApp()
	app.Name = setting.AppName
	app.Usage = "Derived state engine for releases, projects and issues"
	app.Description = `mojo keeps the raw facts of releases, projects, issues, items and daily reports, and computes status, boarding and progress from them whenever they are read.`
	app.Version = appVer.Version + appVer.Extra
	app.EnableBashCompletion = true

	// these sub-commands need to use config file
	subCmdWithConfig := []*cli.Command{
		cmdHelp(),
		CmdMigrate,
		CmdDump,
		CmdIssue,
		CmdItem,
		CmdReport,
		CmdProject,
		CmdRelease,
		CmdSubscription,
		CmdWebhook,
		CmdCron,
	}

	app.Flags = append(app.Flags, cli.VersionFlag)
	app.Flags = append(app.Flags, appGlobalFlags()...)
	app.HideHelp = true // use our own help action to show helps (with more information like default config)
	app.Before = PrepareConsoleLoggerLevel(log.INFO)
	for i := range subCmdWithConfig {
		prepareSubcommandWithConfig(subCmdWithConfig[i], appGlobalFlags())
	}
	app.Commands = append(app.Commands, subCmdWithConfig...)
	return app
}

func RunMainApp(app *cli.App, args ...string) error {
	err := app.Run(args)
	if err == nil {
		return nil
	}
	if strings.HasPrefix(err.Error(), "flag provided but not defined:") {
		// the cli package should already have output the error message, so just exit
		cli.OsExiter(1)
		return err
	}
	_, _ = fmt.Fprintf(app.ErrWriter, "Command error: %v\n", err)
	cli.OsExiter(1)
	return err
}

// PrepareConsoleLoggerLevel sets the console logger level until the config file is read
func PrepareConsoleLoggerLevel(defaultLevel log.Level) func(*cli.Context) error {
	return func(c *cli.Context) error {
		log.Init(log.WriterMode{Level: consoleLevel(c, defaultLevel), Mode: "console"})
		return nil
	}
}

// consoleLevel honors --quiet and --verbose anywhere in the command lineage
func consoleLevel(c *cli.Context, level log.Level) log.Level {
	for _, curCtx := range c.Lineage() {
		switch {
		case curCtx.Bool("quiet"):
			return log.FATAL
		case curCtx.Bool("verbose"):
			return log.TRACE
		}
	}
	return level
}

// Package app wires the Breeze command-line interface
package app

import (
	"github.com/urfave/cli/v2"

	"github.com/breezeflow/breeze/internal/config"
)

// Get retrieves the breeze app instance.
func Get() *cli.App {
	globalFlags := []cli.Flag{
		storeFlag,
		ephemeralFlag,
		logLevelFlag,
		noColorFlag,
	}

	breezeApp := &cli.App{
		Name: "breeze",
		Usage: `
		Breeze is a focus timer for the command-line based on the Pomodoro
		Technique. Work in focused sessions separated by short breaks and a
		long break after every few sessions.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
			{
				Name:   "history",
				Usage:  "List the completed focus sessions. Defaults to the last 7 days",
				Flags:  reportFlags,
				Action: historyAction,
			},
			{
				Name:   "reset",
				Usage:  "Clear the saved timer state",
				Action: resetAction,
			},
			{
				Name:   "serve",
				Usage:  "Run the timer behind a local JSON API",
				Flags:  append([]cli.Flag{addrFlag}, timerFlags...),
				Action: serveAction,
			},
			{
				Name: "stats",
				Usage: `
				Track your progress with detailed statistics reporting. Defaults to a
				reporting period of 7 days`,
				Flags:  reportFlags,
				Action: statsAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of the timer",
				Action: statusAction,
			},
		},
		Flags:  append(globalFlags, timerFlags...),
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}

	return breezeApp
}

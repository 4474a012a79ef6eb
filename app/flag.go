package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears after a session is completed",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each session",
	}

	soundFlag = &cli.StringFlag{
		Name:  "sound",
		Usage: "Path to an mp3, ogg, flac or wav file played when a session ends. Disable sound by setting to 'off'",
	}

	autoStartBreakFlag = &cli.BoolFlag{
		Name:  "auto-start-break",
		Usage: "Start breaks automatically when a work session ends",
	}

	autoStartWorkFlag = &cli.BoolFlag{
		Name:  "auto-start-work",
		Usage: "Start work sessions automatically when a break ends",
	}

	storeFlag = &cli.StringFlag{
		Name:  "store",
		Usage: "Storage backend: bolt, sqlite or memory (default: bolt)",
	}

	ephemeralFlag = &cli.BoolFlag{
		Name:  "ephemeral",
		Usage: "Keep the timer state in memory only",
	}

	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "Log level: debug, info, warn or error (default: info)",
	}

	addrFlag = &cli.StringFlag{
		Name:  "addr",
		Usage: "Address of the timer API (default: 127.0.0.1:1111)",
	}

	shortBreakFlag = &cli.StringFlag{
		Name:    "short-break",
		Aliases: []string{"s"},
		Usage:   "Short break duration in minutes or as a duration such as 5m30s (default: 5)",
	}

	longBreakFlag = &cli.StringFlag{
		Name:    "long-break",
		Aliases: []string{"l"},
		Usage:   "Long break duration in minutes or as a duration such as 15m (default: 15)",
	}

	longBreakIntervalFlag = &cli.UintFlag{
		Name:    "long-break-interval",
		Aliases: []string{"int"},
		Usage:   "The number of work sessions before a long break (default: 4)",
	}

	workFlag = &cli.StringFlag{
		Name:    "work",
		Aliases: []string{"w"},
		Usage:   "Work duration in minutes or as a duration such as 50m (default: 25)",
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   "Reporting period: today, yesterday, 7days, 14days, 30days, 90days, 180days, 365days or all-time",
	}

	startFlag = &cli.StringFlag{
		Name:  "start",
		Usage: "Start of the reporting period (e.g. '2 weeks ago', 2026-03-01)",
	}

	endFlag = &cli.StringFlag{
		Name:  "end",
		Usage: "End of the reporting period (defaults to now)",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output as JSON",
	}
)

// timerFlags configure the engine and are accepted by every command that
// starts it.
var timerFlags = []cli.Flag{
	workFlag,
	shortBreakFlag,
	longBreakFlag,
	longBreakIntervalFlag,
	disableNotificationFlag,
	soundFlag,
	sessionCmdFlag,
	autoStartBreakFlag,
	autoStartWorkFlag,
}

// reportFlags select the records included in history and stats.
var reportFlags = []cli.Flag{
	periodFlag,
	startFlag,
	endFlag,
	jsonFlag,
}

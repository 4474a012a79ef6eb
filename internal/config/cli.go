package config

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/breezeflow/breeze/internal/session"
	"github.com/breezeflow/breeze/notify"
	"github.com/breezeflow/breeze/store"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Work              string
	ShortBreak        string
	LongBreak         string
	Sound             string
	SessionCmd        string
	StoreDriver       string
	LogLevel          string
	Addr              string
	LongBreakInterval uint
	DisableNotify     bool
	AutoStartBreak    bool
	AutoStartWork     bool
	Ephemeral         bool
}

// WithCLIConfig returns an Option that overrides configuration with the
// command-line flags that were set.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Work:              ctx.String("work"),
			ShortBreak:        ctx.String("short-break"),
			LongBreak:         ctx.String("long-break"),
			LongBreakInterval: ctx.Uint("long-break-interval"),
			Sound:             ctx.String("sound"),
			SessionCmd:        ctx.String("session-cmd"),
			StoreDriver:       ctx.String("store"),
			LogLevel:          ctx.String("log-level"),
			Addr:              ctx.String("addr"),
			DisableNotify:     ctx.Bool("disable-notification"),
			AutoStartBreak:    ctx.Bool("auto-start-break"),
			AutoStartWork:     ctx.Bool("auto-start-work"),
			Ephemeral:         ctx.Bool("ephemeral"),
		}

		return applyCLIOptions(c, &opts)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts *CLIOptions) error {
	if err := applyCLIDurations(c, opts); err != nil {
		return err
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	if opts.Sound != "" {
		c.Notifications.Sound = opts.Sound
		if opts.Sound == notify.SoundOff {
			c.Notifications.Sound = ""
		}
	}

	if opts.SessionCmd != "" {
		c.Settings.Cmd = opts.SessionCmd
	}

	if opts.AutoStartBreak {
		c.Settings.AutoStartBreak = true
	}

	if opts.AutoStartWork {
		c.Settings.AutoStartWork = true
	}

	if opts.StoreDriver != "" {
		c.Store.Driver = opts.StoreDriver
	}

	if opts.Ephemeral {
		c.Store.Driver = store.DriverMemory
	}

	if opts.LogLevel != "" {
		c.Log.Level = opts.LogLevel
	}

	if opts.Addr != "" {
		c.Server.Addr = opts.Addr
	}

	return nil
}

// applyCLIDurations handles parsing and applying duration settings from CLI.
func applyCLIDurations(c *Config, opts *CLIOptions) error {
	durations := []struct {
		dst  *time.Duration
		name session.Name
		val  string
	}{
		{&c.Work.Duration, session.Work, opts.Work},
		{&c.ShortBreak.Duration, session.ShortBreak, opts.ShortBreak},
		{&c.LongBreak.Duration, session.LongBreak, opts.LongBreak},
	}

	for _, d := range durations {
		if d.val == "" {
			continue
		}

		dur, err := parseDuration(d.val)
		if err != nil {
			return errInvalidCLIDuration.Fmt(d.name, err)
		}

		*d.dst = dur
	}

	if opts.LongBreakInterval > 0 {
		c.Settings.LongBreakInterval = int(opts.LongBreakInterval)
	}

	return nil
}

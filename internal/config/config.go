// Package config loads and validates the Breeze configuration from the config
// file, the first-run prompt and command-line flags
package config

import (
	"fmt"
	"time"

	"github.com/breezeflow/breeze/internal/session"
	"github.com/breezeflow/breeze/timer"
)

type (
	// Config holds all configuration settings
	Config struct {
		Work          SessionConfig      `mapstructure:"work"`
		ShortBreak    SessionConfig      `mapstructure:"short_break"`
		LongBreak     SessionConfig      `mapstructure:"long_break"`
		Settings      SettingsConfig     `mapstructure:"settings"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Display       DisplayConfig      `mapstructure:"display"`
		Store         StoreConfig        `mapstructure:"store"`
		Server        ServerConfig       `mapstructure:"server"`
		Log           LogConfig          `mapstructure:"log"`
	}

	// SessionConfig holds the settings of a single session
	SessionConfig struct {
		Message  string        `mapstructure:"message"`
		Color    string        `mapstructure:"color"`
		Duration time.Duration `mapstructure:"-"`
	}

	// SettingsConfig holds the timer behaviour settings
	SettingsConfig struct {
		Cmd               string `mapstructure:"cmd"`
		LongBreakInterval int    `mapstructure:"long_break_interval"`
		AutoStartWork     bool   `mapstructure:"auto_start_work"`
		AutoStartBreak    bool   `mapstructure:"auto_start_break"`
		TwentyFourHour    bool   `mapstructure:"24hr_clock"`
	}

	// NotificationConfig holds notification settings
	NotificationConfig struct {
		Sound   string `mapstructure:"sound"`
		Enabled bool   `mapstructure:"enabled"`
	}

	// DisplayConfig holds display-related settings
	DisplayConfig struct {
		DarkTheme bool `mapstructure:"dark_theme"`
	}

	// StoreConfig selects the persistence backend
	StoreConfig struct {
		Driver string `mapstructure:"driver"`
		Path   string `mapstructure:"path"`
	}

	// ServerConfig holds the HTTP API settings
	ServerConfig struct {
		Addr string `mapstructure:"addr"`
	}

	// LogConfig holds the log settings
	LogConfig struct {
		Level string `mapstructure:"level"`
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.4.0"

// New creates a new Config and applies the options in order. The result is
// validated once every option has been applied.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Durations returns the session lengths.
func (c *Config) Durations() timer.Durations {
	return timer.Durations{
		Work:       c.Work.Duration,
		ShortBreak: c.ShortBreak.Duration,
		LongBreak:  c.LongBreak.Duration,
	}
}

// Messages returns the message displayed before each session.
func (c *Config) Messages() session.Message {
	return session.Message{
		session.Work:       c.Work.Message,
		session.ShortBreak: c.ShortBreak.Message,
		session.LongBreak:  c.LongBreak.Message,
	}
}

// Colors returns the colour of each session.
func (c *Config) Colors() map[session.Name]string {
	return map[session.Name]string{
		session.Work:       c.Work.Color,
		session.ShortBreak: c.ShortBreak.Color,
		session.LongBreak:  c.LongBreak.Color,
	}
}

// Timer returns the engine settings.
func (c *Config) Timer() timer.Config {
	return timer.Config{
		Durations:         c.Durations(),
		Messages:          c.Messages(),
		LongBreakInterval: c.Settings.LongBreakInterval,
		AutoStartWork:     c.Settings.AutoStartWork,
		AutoStartBreak:    c.Settings.AutoStartBreak,
	}
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"work=%s short_break=%s long_break=%s interval=%d store=%s",
		c.Work.Duration,
		c.ShortBreak.Duration,
		c.LongBreak.Duration,
		c.Settings.LongBreakInterval,
		c.Store.Driver,
	)
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	keyWorkDuration         = "work.duration"
	keyWorkMessage          = "work.message"
	keyWorkColor            = "work.color"
	keyShortBreakDuration   = "short_break.duration"
	keyShortBreakMessage    = "short_break.message"
	keyShortBreakColor      = "short_break.color"
	keyLongBreakDuration    = "long_break.duration"
	keyLongBreakMessage     = "long_break.message"
	keyLongBreakColor       = "long_break.color"
	keyLongBreakInterval    = "settings.long_break_interval"
	keyAutoStartWork        = "settings.auto_start_work"
	keyAutoStartBreak       = "settings.auto_start_break"
	keySessionCmd           = "settings.cmd"
	keyTwentyFourHour       = "settings.24hr_clock"
	keyNotificationsEnabled = "notifications.enabled"
	keyNotificationsSound   = "notifications.sound"
	keyDarkTheme            = "display.dark_theme"
	keyStoreDriver          = "store.driver"
	keyStorePath            = "store.path"
	keyServerAddr           = "server.addr"
	keyLogLevel             = "log.level"
)

// Default values.
const (
	DefaultServerAddr  = "127.0.0.1:1111"
	DefaultStoreDriver = "bolt"
	DefaultLogLevel    = "info"
)

// envPrefix is the prefix of environment variables that override config
// file values (e.g. BREEZE_WORK_DURATION).
const envPrefix = "BREEZE"

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath. The file is created with the defaults if it does not
// exist yet.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		setupViper(v)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		// keep values chosen in the first-run prompt
		if c.Work.Duration > 0 {
			v.Set(keyWorkDuration, c.Work.Duration.String())
			v.Set(keyShortBreakDuration, c.ShortBreak.Duration.String())
			v.Set(keyLongBreakDuration, c.LongBreak.Duration.String())
			v.Set(keyLongBreakInterval, c.Settings.LongBreakInterval)
			v.Set(keyAutoStartBreak, c.Settings.AutoStartBreak)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper registers the default value of every key.
func setupViper(v *viper.Viper) {
	v.SetDefault(keyWorkDuration, "25m")
	v.SetDefault(keyWorkMessage, "Focus on your task")
	v.SetDefault(keyWorkColor, "#B0DB43")
	v.SetDefault(keyShortBreakDuration, "5m")
	v.SetDefault(keyShortBreakMessage, "Take a breather")
	v.SetDefault(keyShortBreakColor, "#12EAEA")
	v.SetDefault(keyLongBreakDuration, "15m")
	v.SetDefault(keyLongBreakMessage, "Take a long break")
	v.SetDefault(keyLongBreakColor, "#C492B1")
	v.SetDefault(keyLongBreakInterval, 4)
	v.SetDefault(keyAutoStartWork, false)
	v.SetDefault(keyAutoStartBreak, false)
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyNotificationsSound, "")
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyStoreDriver, DefaultStoreDriver)
	v.SetDefault(keyStorePath, "")
	v.SetDefault(keyServerAddr, DefaultServerAddr)
	v.SetDefault(keyLogLevel, DefaultLogLevel)
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	return loadDurations(v, c)
}

// loadDurations parses the duration strings. Durations are kept out of
// Unmarshal so that bare numbers can be read as minutes.
func loadDurations(v *viper.Viper, c *Config) error {
	durations := []struct {
		dst  *time.Duration
		key  string
		name string
	}{
		{&c.Work.Duration, keyWorkDuration, "work"},
		{&c.ShortBreak.Duration, keyShortBreakDuration, "short break"},
		{&c.LongBreak.Duration, keyLongBreakDuration, "long break"},
	}

	for _, d := range durations {
		dur, err := parseDuration(v.GetString(d.key))
		if err != nil {
			return errInvalidCLIDuration.Fmt(d.name, err)
		}

		*d.dst = dur
	}

	return nil
}

// parseDuration parses a duration string. A number without a unit is read
// as minutes.
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	mins, err := time.ParseDuration(s + "m")
	if err != nil {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	return mins, nil
}

package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/breezeflow/breeze/internal/session"
	"github.com/breezeflow/breeze/internal/testutil"
	"github.com/breezeflow/breeze/store"
)

// defaultConfig returns a new Config instance with default values.
func defaultConfig() *Config {
	return &Config{
		Work: SessionConfig{
			Message:  "Focus on your task",
			Color:    "#B0DB43",
			Duration: 25 * time.Minute,
		},
		ShortBreak: SessionConfig{
			Message:  "Take a breather",
			Color:    "#12EAEA",
			Duration: 5 * time.Minute,
		},
		LongBreak: SessionConfig{
			Message:  "Take a long break",
			Color:    "#C492B1",
			Duration: 15 * time.Minute,
		},
		Settings: SettingsConfig{
			LongBreakInterval: 4,
		},
		Notifications: NotificationConfig{
			Enabled: true,
		},
		Display: DisplayConfig{
			DarkTheme: true,
		},
		Store: StoreConfig{
			Driver: DefaultStoreDriver,
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

func TestViperWriteConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := New(WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, defaultConfig(), cfg)
	assert.FileExists(t, configPath)

	// reading the written file yields the same config
	cfg, err = New(WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, defaultConfig(), cfg)
}

func TestViperReadConfig(t *testing.T) {
	configPath := testutil.InstallFixture(t, "modified_config.yml", t.TempDir())

	want := &Config{
		Work: SessionConfig{
			Message:  "Deep work",
			Color:    "#FF8800",
			Duration: 50 * time.Minute,
		},
		ShortBreak: SessionConfig{
			Message:  "Take a short rest",
			Color:    "#12EAEA",
			Duration: 10 * time.Minute,
		},
		LongBreak: SessionConfig{
			Message:  "Rest a little longer",
			Color:    "#C492B1",
			Duration: 30 * time.Minute,
		},
		Settings: SettingsConfig{
			Cmd:               "notify-send done",
			LongBreakInterval: 6,
			AutoStartBreak:    true,
			TwentyFourHour:    true,
		},
		Notifications: NotificationConfig{},
		Display:       DisplayConfig{},
		Store: StoreConfig{
			Driver: store.DriverSQLite,
			Path:   "/tmp/breeze.sqlite",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		Log: LogConfig{
			Level: "debug",
		},
	}

	cfg, err := New(WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, want, cfg)
}

func TestViperInvalidConfig(t *testing.T) {
	configPath := testutil.InstallFixture(t, "invalid_config.yml", t.TempDir())

	_, err := New(WithViperConfig(configPath))
	assert.ErrorIs(t, err, errShortBreakTooLong)
}

func TestPromptValuesAreWritten(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	prompted := func(c *Config) error {
		applyPromptOptions(c, &PromptOptions{
			WorkDuration:       50,
			ShortBreakDuration: 10,
			LongBreakDuration:  20,
			LongBreakInterval:  6,
			AutoStartBreak:     true,
		})

		return nil
	}

	cfg, err := New(prompted, WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, 50*time.Minute, cfg.Work.Duration)
	assert.Equal(t, 20*time.Minute, cfg.LongBreak.Duration)
	assert.Equal(t, 6, cfg.Settings.LongBreakInterval)
	assert.True(t, cfg.Settings.AutoStartBreak)

	b, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "50m0s")

	// an existing config file skips the prompt
	assert.NoError(t, WithPromptConfig(configPath)(&Config{}))
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		want   error
		modify func(c *Config)
		name   string
	}{
		{
			name:   "defaults",
			modify: func(_ *Config) {},
		},
		{
			name: "zero work duration",
			modify: func(c *Config) {
				c.Work.Duration = 0
			},
			want: errInvalidDuration,
		},
		{
			name: "fractional seconds",
			modify: func(c *Config) {
				c.Work.Duration = 1500 * time.Millisecond
			},
			want: errInvalidDuration,
		},
		{
			name: "longer than twelve hours",
			modify: func(c *Config) {
				c.LongBreak.Duration = 13 * time.Hour
			},
			want: errInvalidDuration,
		},
		{
			name: "one second sessions",
			modify: func(c *Config) {
				c.Work.Duration = 2 * time.Second
				c.ShortBreak.Duration = time.Second
				c.LongBreak.Duration = time.Second
			},
		},
		{
			name: "short break as long as work",
			modify: func(c *Config) {
				c.ShortBreak.Duration = c.Work.Duration
			},
			want: errShortBreakTooLong,
		},
		{
			name: "long break shorter than short break",
			modify: func(c *Config) {
				c.LongBreak.Duration = time.Minute
			},
			want: errLongBreakTooShort,
		},
		{
			name: "empty message",
			modify: func(c *Config) {
				c.ShortBreak.Message = "  "
			},
			want: errEmptyMsg,
		},
		{
			name: "bad colour",
			modify: func(c *Config) {
				c.Work.Color = "green"
			},
			want: errInvalidColor,
		},
		{
			name: "interval out of range",
			modify: func(c *Config) {
				c.Settings.LongBreakInterval = 11
			},
			want: errInvalidLongBreakInterval,
		},
		{
			name: "unsupported sound",
			modify: func(c *Config) {
				c.Notifications.Sound = "bell.aiff"
			},
			want: errInvalidSoundFormat,
		},
		{
			name: "missing sound file",
			modify: func(c *Config) {
				c.Notifications.Sound = "/does/not/exist/bell.ogg"
			},
			want: errUnknownSound,
		},
		{
			name: "sound off",
			modify: func(c *Config) {
				c.Notifications.Sound = "off"
			},
		},
		{
			name: "unknown driver",
			modify: func(c *Config) {
				c.Store.Driver = "redis"
			},
			want: errUnknownDriver,
		},
		{
			name: "unknown log level",
			modify: func(c *Config) {
				c.Log.Level = "verbose"
			},
			want: errInvalidLogLevel,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.modify(cfg)

			err := cfg.Validate()

			if tc.want == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func newContext(t *testing.T, flags map[string]string) *cli.Context {
	t.Helper()

	f := flag.NewFlagSet("breeze", flag.ContinueOnError)

	for k, v := range flags {
		switch k {
		case "disable-notification", "auto-start-break", "auto-start-work", "ephemeral":
			_ = f.Bool(k, false, "")
		case "long-break-interval":
			_ = f.Uint(k, 0, "")
		default:
			_ = f.String(k, "", "")
		}

		require.NoError(t, f.Set(k, v))
	}

	return cli.NewContext(&cli.App{}, f, nil)
}

func TestCLIConfig(t *testing.T) {
	ctx := newContext(t, map[string]string{
		"work":                 "45",
		"short-break":          "10m",
		"long-break-interval":  "3",
		"disable-notification": "true",
		"auto-start-work":      "true",
		"session-cmd":          "echo done",
		"ephemeral":            "true",
		"sound":                "off",
	})

	cfg := defaultConfig()
	cfg.Notifications.Sound = "/tmp/bell.ogg"

	require.NoError(t, WithCLIConfig(ctx)(cfg))

	assert.Equal(t, 45*time.Minute, cfg.Work.Duration)
	assert.Equal(t, 10*time.Minute, cfg.ShortBreak.Duration)
	assert.Equal(t, 15*time.Minute, cfg.LongBreak.Duration)
	assert.Equal(t, 3, cfg.Settings.LongBreakInterval)
	assert.False(t, cfg.Notifications.Enabled)
	assert.Empty(t, cfg.Notifications.Sound)
	assert.True(t, cfg.Settings.AutoStartWork)
	assert.False(t, cfg.Settings.AutoStartBreak)
	assert.Equal(t, "echo done", cfg.Settings.Cmd)
	assert.Equal(t, store.DriverMemory, cfg.Store.Driver)
}

func TestCLIConfigInvalidDuration(t *testing.T) {
	ctx := newContext(t, map[string]string{
		"long-break": "forever",
	})

	err := WithCLIConfig(ctx)(defaultConfig())
	assert.ErrorIs(t, err, errInvalidCLIDuration)
}

func TestTimerConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Settings.AutoStartBreak = true

	tc := cfg.Timer()

	assert.Equal(t, 25*time.Minute, tc.Durations.Work)
	assert.Equal(t, 4, tc.LongBreakInterval)
	assert.True(t, tc.AutoStartBreak)
	assert.Equal(t, "Take a breather", tc.Messages[session.ShortBreak])
	assert.Equal(t, "#C492B1", cfg.Colors()[session.LongBreak])
}

func TestParseDuration(t *testing.T) {
	testCases := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "25m", want: 25 * time.Minute},
		{in: "90s", want: 90 * time.Second},
		{in: "1h30m", want: 90 * time.Minute},
		{in: "25", want: 25 * time.Minute},
		{in: " 5 ", want: 5 * time.Minute},
		{in: "soon", wantErr: true},
	}

	for _, tc := range testCases {
		got, err := parseDuration(tc.in)

		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}

		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

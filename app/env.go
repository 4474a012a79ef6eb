package app

import (
	"io"
	"log/slog"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/breezeflow/breeze/internal/color"
	"github.com/breezeflow/breeze/internal/config"
	"github.com/breezeflow/breeze/internal/logging"
	"github.com/breezeflow/breeze/internal/pathutil"
	"github.com/breezeflow/breeze/internal/static"
	"github.com/breezeflow/breeze/notify"
	"github.com/breezeflow/breeze/store"
	"github.com/breezeflow/breeze/timer"
)

// env holds the resources shared by the commands.
type env struct {
	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
	db        store.Store
}

// loadConfig reads the config file and applies the command-line flags. The
// first-run prompt is only shown when prompt is true.
func loadConfig(ctx *cli.Context, prompt bool) (*config.Config, error) {
	configPath := pathutil.ConfigFilePath()

	opts := []config.Option{}

	if prompt {
		opts = append(opts, config.WithPromptConfig(configPath))
	}

	opts = append(opts,
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
	)

	return config.New(opts...)
}

// storePath returns the database location for the configured driver.
func storePath(cfg *config.Config) string {
	if cfg.Store.Path != "" {
		return cfg.Store.Path
	}

	return pathutil.DBFilePathFor(cfg.Store.Driver)
}

// newEnv loads the configuration, starts logging and opens the store.
func newEnv(ctx *cli.Context, prompt bool) (*env, error) {
	cfg, err := loadConfig(ctx, prompt)
	if err != nil {
		return nil, err
	}

	color.DarkTheme = cfg.Display.DarkTheme

	logger, closer := logging.New(logging.Options{
		Path:  pathutil.LogFilePath(),
		Level: cfg.Log.Level,
	})

	slog.SetDefault(logger)

	db, err := store.Open(cfg.Store.Driver, storePath(cfg))
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	e := &env{
		cfg:       cfg,
		logger:    logger,
		logCloser: closer,
		db:        db,
	}

	n, err := store.Migrate(db)
	if err != nil {
		logger.Warn("unable to migrate focus log", slog.Any("error", err))
	} else if n > 0 {
		logger.Info("migrated focus log", slog.Int("records", n))
	}

	logger.Debug("environment ready", slog.String("config", cfg.String()))

	return e, nil
}

func (e *env) Close() {
	if err := e.db.Close(); err != nil {
		e.logger.Error("unable to close store", slog.Any("error", err))
	}

	_ = e.logCloser.Close()
}

// notifier builds the notifiers enabled in the configuration.
func (e *env) notifier() notify.Multi {
	var n notify.Multi

	if e.cfg.Notifications.Enabled {
		icon, err := static.Install(filepath.Dir(pathutil.DBFilePath()))
		if err != nil {
			e.logger.Debug("unable to install notification icon", slog.Any("error", err))
		}

		n = append(n, notify.NewDesktop(icon))
	}

	if e.cfg.Notifications.Sound != "" {
		n = append(n, notify.NewSound(e.cfg.Notifications.Sound))
	}

	if e.cfg.Settings.Cmd != "" {
		n = append(n, notify.NewCommand(e.cfg.Settings.Cmd))
	}

	return n
}

// engine returns an initialized timer engine backed by the store.
func (e *env) engine() (*timer.Engine, error) {
	engine, err := timer.New(e.db, e.cfg.Timer(),
		timer.WithNotifier(e.notifier()),
		timer.WithLogger(e.logger),
	)
	if err != nil {
		return nil, err
	}

	engine.Initialize()

	return engine, nil
}

package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/breezeflow/breeze/internal/config"
	"github.com/breezeflow/breeze/internal/osutil"
	"github.com/breezeflow/breeze/internal/pathutil"
	"github.com/breezeflow/breeze/internal/session"
	"github.com/breezeflow/breeze/internal/ui"
	"github.com/breezeflow/breeze/report"
	"github.com/breezeflow/breeze/server"
	"github.com/breezeflow/breeze/stats"
	"github.com/breezeflow/breeze/store"
	"github.com/breezeflow/breeze/timer"
)

const (
	envNoColor       = "NO_COLOR"
	envBreezeNoColor = "BREEZE_NO_COLOR"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// recordHelper returns the focus records within the period selected on the
// command-line.
func recordHelper(ctx *cli.Context) ([]session.Record, *config.FilterConfig, error) {
	filter, err := config.Filter(ctx, time.Now())
	if err != nil {
		return nil, nil, err
	}

	e, err := newEnv(ctx, false)
	if err != nil {
		return nil, nil, err
	}

	defer e.Close()

	records, err := store.Records(e.db)
	if err != nil {
		return nil, nil, err
	}

	return filterRecords(records, filter), filter, nil
}

// defaultAction starts the interactive timer.
func defaultAction(ctx *cli.Context) error {
	e, err := newEnv(ctx, true)
	if err != nil {
		return err
	}

	defer e.Close()

	engine, err := e.engine()
	if err != nil {
		return err
	}

	defer engine.Close()

	return ui.Run(engine, ui.Options{
		Logger:            e.logger,
		Colors:            e.cfg.Colors(),
		Messages:          e.cfg.Messages(),
		StatusFile:        pathutil.StatusFilePath(),
		LongBreakInterval: e.cfg.Settings.LongBreakInterval,
		DarkTheme:         e.cfg.Display.DarkTheme,
		TwentyFourHour:    e.cfg.Settings.TwentyFourHour,
	})
}

// serveAction runs the engine behind the JSON API until interrupted.
func serveAction(ctx *cli.Context) error {
	e, err := newEnv(ctx, false)
	if err != nil {
		return err
	}

	defer e.Close()

	engine, err := e.engine()
	if err != nil {
		return err
	}

	defer engine.Close()

	sigCtx, stop := signal.NotifyContext(
		ctx.Context,
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	srv := server.New(engine, server.WithLogger(e.logger))

	pterm.Info.Printfln("Serving the timer API on http://%s", e.cfg.Server.Addr)

	return srv.ListenAndServe(sigCtx, e.cfg.Server.Addr)
}

// resetAction clears the persisted timer state. The focus log is kept.
func resetAction(ctx *cli.Context) error {
	e, err := newEnv(ctx, false)
	if err != nil {
		return err
	}

	defer e.Close()

	engine, err := e.engine()
	if err != nil {
		return err
	}

	defer engine.Close()

	engine.Clear()

	report.Success("Timer state cleared")

	return nil
}

// historyAction prints a table of the focus records in the selected period.
func historyAction(ctx *cli.Context) error {
	records, _, err := recordHelper(ctx)
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		b, err := json.Marshal(records)
		if err != nil {
			return err
		}

		pterm.Println(string(b))

		return nil
	}

	return listRecords(os.Stdout, records, time.Now())
}

// statsAction computes the stats for the specified time period.
func statsAction(ctx *cli.Context) error {
	records, filter, err := recordHelper(ctx)
	if err != nil {
		return err
	}

	s := stats.Compute(records, filter.StartTime, filter.EndTime)

	if ctx.Bool("json") {
		b, err := s.ToJSON()
		if err != nil {
			return err
		}

		fmt.Println(string(b))

		return nil
	}

	return stats.Render(os.Stdout, s)
}

// statusAction prints the status of the timer. While another instance holds
// the store, the status file it maintains is read instead.
func statusAction(ctx *cli.Context) error {
	e, err := newEnv(ctx, false)
	if errors.Is(err, store.ErrLocked) {
		s, err := timer.ReadStatusFile(pathutil.StatusFilePath())
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		if err != nil {
			return err
		}

		printStatus(s, time.Now())

		return nil
	}

	if err != nil {
		return err
	}

	defer e.Close()

	st, err := timer.Load(e.db)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}

	if err != nil {
		return err
	}

	saved := time.UnixMilli(st.LastPersistedAt)
	s := timer.NewStatus(st, e.cfg.Settings.LongBreakInterval, saved)

	printStatus(&s, time.Now())

	return nil
}

func printStatus(s *timer.Status, now time.Time) {
	remaining := s.Remaining(now)
	if remaining < 0 {
		return
	}

	text := s.Label() + ": " + formatRemaining(remaining)
	if s.Paused {
		text += " (paused)"
	}

	pterm.Println(text)
}

// editConfigAction handles the edit-config command which opens the config
// file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, pathutil.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	report.Setup()

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		report.DisableStyling()
	}

	// Disable colour output if BREEZE_NO_COLOR is set
	if _, exists := os.LookupEnv(envBreezeNoColor); exists {
		report.DisableStyling()
	}

	if ctx.Bool("no-color") {
		report.DisableStyling()
	}

	return pathutil.Initialize()
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting breeze")

	return nil
}

// Package ui renders the interactive timer and the tables printed by the
// command-line interface
package ui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/breezeflow/breeze/internal/logging"
	"github.com/breezeflow/breeze/internal/session"
	"github.com/breezeflow/breeze/internal/timeutil"
	"github.com/breezeflow/breeze/stats"
	"github.com/breezeflow/breeze/timer"
)

// Engine is the part of the timer engine driven by the interface.
type Engine interface {
	State() timer.State
	Toggle() timer.State
	Reset() timer.State
	Skip() timer.State
	Records() ([]session.Record, error)
	Subscribe(buffer int) <-chan timer.State
	Unsubscribe(sub <-chan timer.State)
}

// Options configures the interface.
type Options struct {
	Logger   *slog.Logger
	Now      func() time.Time
	Colors   map[session.Name]string
	Messages session.Message
	// StatusFile receives a status snapshot on every update when set
	StatusFile        string
	LongBreakInterval int
	DarkTheme         bool
	TwentyFourHour    bool
}

// stateMsg carries a snapshot published by the engine.
type stateMsg timer.State

// closedMsg reports that the engine closed the subscription.
type closedMsg struct{}

// Model is the bubbletea model of the timer screen. It holds no timer state
// of its own beyond the latest snapshot.
type Model struct {
	engine   Engine
	updates  <-chan timer.State
	opts     Options
	style    style
	help     help.Model
	progress progress.Model
	today    stats.TodaySummary
	state    timer.State
	// pomodoros is the count for which today was last computed
	pomodoros int
}

// New subscribes to the engine and returns the model.
func New(engine Engine, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	if opts.LongBreakInterval <= 0 {
		opts.LongBreakInterval = 4
	}

	m := &Model{
		engine:  engine,
		updates: engine.Subscribe(1),
		opts:    opts,
		style:   newStyle(opts.Colors, opts.DarkTheme),
		help:    help.New(),
		progress: progress.New(
			progress.WithSolidFill(opts.Colors[session.Work]),
			progress.WithoutPercentage(),
		),
		state:     engine.State(),
		pomodoros: -1,
	}

	m.progress.Width = maxWidth - padding*2 - 4
	m.refreshToday()

	return m
}

// Run starts the interactive timer and blocks until the user quits.
func Run(engine Engine, opts Options) error {
	m := New(engine, opts)
	defer engine.Unsubscribe(m.updates)

	_, err := tea.NewProgram(m).Run()

	return err
}

// waitForState blocks until the engine publishes a snapshot.
func (m *Model) waitForState() tea.Cmd {
	updates := m.updates

	return func() tea.Msg {
		st, ok := <-updates
		if !ok {
			return closedMsg{}
		}

		return stateMsg(st)
	}
}

func (m *Model) Init() tea.Cmd {
	return m.waitForState()
}

func (m *Model) setState(st timer.State) {
	m.state = st
	m.refreshToday()
	m.writeStatusFile()
}

// refreshToday recomputes today's totals when a work session was recorded.
func (m *Model) refreshToday() {
	if m.state.PomodorosCompleted == m.pomodoros {
		return
	}

	m.pomodoros = m.state.PomodorosCompleted

	records, err := m.engine.Records()
	if err != nil {
		m.opts.Logger.Warn("unable to read focus log", slog.Any("error", err))
		return
	}

	m.today = stats.Today(records, m.opts.Now())
}

func (m *Model) writeStatusFile() {
	if m.opts.StatusFile == "" {
		return
	}

	s := timer.NewStatus(m.state, m.opts.LongBreakInterval, m.opts.Now())

	if err := timer.WriteStatusFile(m.opts.StatusFile, s); err != nil {
		m.opts.Logger.Debug("unable to write status file", slog.Any("error", err))
	}
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.togglePlay):
		m.setState(m.engine.Toggle())
	case key.Matches(msg, defaultKeymap.reset):
		m.setState(m.engine.Reset())
	case key.Matches(msg, defaultKeymap.skip):
		m.setState(m.engine.Skip())
	case key.Matches(msg, defaultKeymap.quit):
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.setState(timer.State(msg))

		return m, m.waitForState()

	case closedMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.progress.Width = min(msg.Width-padding*2-4, maxWidth)

		return m, nil

	default:
		m.opts.Logger.Debug(spew.Sdump(msg))
	}

	return m, nil
}

func (m *Model) timeFormat() string {
	if m.opts.TwentyFourHour {
		return "15:04:05"
	}

	return "03:04:05 PM"
}

func (m *Model) headerView() string {
	var s strings.Builder

	st := m.state

	s.WriteString(m.style.session(st.SessionType).Render(string(st.SessionType)))

	if st.IsRunning {
		end := st.EndTime(m.opts.Now()).Format(m.timeFormat())
		s.WriteString(m.style.hint.Render("until " + end))
	} else {
		s.WriteString(m.style.secondary.Render("[Paused]"))
	}

	if st.SessionType == session.Work {
		s.WriteString(m.style.hint.Render(fmt.Sprintf(
			" (%d/%d)",
			st.PomodorosCompleted%m.opts.LongBreakInterval+1,
			m.opts.LongBreakInterval,
		)))
	}

	return s.String()
}

func (m *Model) todayView() string {
	sessions := "sessions"
	if m.today.Sessions == 1 {
		sessions = "session"
	}

	return m.style.hint.Render(fmt.Sprintf(
		"Today: %d %s, %s focused · %d pomodoros completed",
		m.today.Sessions,
		sessions,
		stats.FormatMinutes(m.today.Minutes),
		m.state.PomodorosCompleted,
	))
}

func (m *Model) View() string {
	var s strings.Builder

	s.WriteString(m.headerView())

	if msg := m.opts.Messages[m.state.SessionType]; msg != "" {
		s.WriteString("\n\n" + m.style.secondary.Render(msg))
	}

	s.WriteString("\n\n")
	s.WriteString(m.style.main.Render(timeutil.Clock(m.state.TimeLeftSeconds)))
	s.WriteString("\n\n")
	if c := m.opts.Colors[m.state.SessionType]; c != "" {
		m.progress.FullColor = c
	}

	s.WriteString(m.progress.ViewAs(m.state.Progress()))
	s.WriteString("\n\n")
	s.WriteString(m.todayView())
	s.WriteString("\n\n")
	s.WriteString(m.help.ShortHelpView(defaultKeymap.ShortHelp()))

	return m.style.base.Render(s.String())
}

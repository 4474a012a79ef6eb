package ui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breezeflow/breeze/internal/session"
	"github.com/breezeflow/breeze/timer"
)

var now = time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)

type fakeEngine struct {
	updates      chan timer.State
	records      []session.Record
	calls        []string
	state        timer.State
	recordsCalls int
	unsubscribed bool
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		updates: make(chan timer.State, 1),
		state:   timer.NewState(timer.DefaultDurations()),
	}
}

func (e *fakeEngine) State() timer.State {
	return e.state
}

func (e *fakeEngine) Toggle() timer.State {
	e.calls = append(e.calls, "toggle")
	e.state.IsRunning = !e.state.IsRunning

	return e.state
}

func (e *fakeEngine) Reset() timer.State {
	e.calls = append(e.calls, "reset")
	e.state.IsRunning = false
	e.state.TimeLeftSeconds = e.state.CurrentDuration()

	return e.state
}

func (e *fakeEngine) Skip() timer.State {
	e.calls = append(e.calls, "skip")
	e.state.SessionType = session.ShortBreak
	e.state.TimeLeftSeconds = e.state.ShortBreakDurationSeconds
	e.state.PomodorosCompleted++

	return e.state
}

func (e *fakeEngine) Records() ([]session.Record, error) {
	e.recordsCalls++

	return e.records, nil
}

func (e *fakeEngine) Subscribe(_ int) <-chan timer.State {
	return e.updates
}

func (e *fakeEngine) Unsubscribe(_ <-chan timer.State) {
	e.unsubscribed = true
}

func newModel(t *testing.T, e *fakeEngine, opts Options) *Model {
	t.Helper()

	opts.Now = func() time.Time { return now }

	return New(e, opts)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyPresses(t *testing.T) {
	e := newFakeEngine()
	m := newModel(t, e, Options{})

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.True(t, m.state.IsRunning)

	m.Update(runeKey('r'))
	assert.False(t, m.state.IsRunning)

	m.Update(runeKey('s'))
	assert.Equal(t, session.ShortBreak, m.state.SessionType)

	// unbound keys do nothing
	m.Update(runeKey('x'))

	assert.Equal(t, []string{"toggle", "reset", "skip"}, e.calls)
}

func TestQuit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		runeKey('q'),
		{Type: tea.KeyCtrlC},
	} {
		m := newModel(t, newFakeEngine(), Options{})

		_, cmd := m.Update(msg)
		require.NotNil(t, cmd, msg.String())
		assert.IsType(t, tea.QuitMsg{}, cmd(), msg.String())
	}
}

func TestStateUpdates(t *testing.T) {
	e := newFakeEngine()
	statusFile := filepath.Join(t.TempDir(), "status.json")
	m := newModel(t, e, Options{StatusFile: statusFile})

	st := e.state
	st.IsRunning = true
	st.TimeLeftSeconds = 1200
	e.updates <- st

	msg := m.Init()()
	require.IsType(t, stateMsg{}, msg)

	_, cmd := m.Update(msg)
	assert.NotNil(t, cmd)
	assert.Equal(t, 1200, m.state.TimeLeftSeconds)

	status, err := timer.ReadStatusFile(statusFile)
	require.NoError(t, err)
	assert.Equal(t, 20*time.Minute, status.Remaining(now))

	close(e.updates)

	msg = cmd()
	assert.IsType(t, closedMsg{}, msg)

	_, cmd = m.Update(msg)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestTodayIsRefreshedAfterWorkSessions(t *testing.T) {
	e := newFakeEngine()
	e.records = []session.Record{
		session.NewRecord(session.Work, now.Add(-time.Hour), 1500),
	}

	m := newModel(t, e, Options{})
	assert.Equal(t, 1, m.today.Sessions)

	// snapshots with the same count do not hit the store again
	m.Update(stateMsg(e.state))
	assert.Equal(t, 1, e.recordsCalls)

	e.records = append(e.records, session.NewRecord(session.Work, now, 1500))
	m.Update(runeKey('s'))

	assert.Equal(t, 2, e.recordsCalls)
	assert.Equal(t, 2, m.today.Sessions)
	assert.Equal(t, 50, m.today.Minutes)
}

func TestView(t *testing.T) {
	e := newFakeEngine()
	m := newModel(t, e, Options{
		Messages: timer.DefaultMessages(),
		Colors: map[session.Name]string{
			session.Work: "#B0DB43",
		},
	})

	view := m.View()

	assert.Contains(t, view, "Work session")
	assert.Contains(t, view, "[Paused]")
	assert.Contains(t, view, "(1/4)")
	assert.Contains(t, view, "Focus on your task")
	assert.Contains(t, view, "25:00")
	assert.Contains(t, view, "Today: 0 sessions")

	m.opts.TwentyFourHour = true
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	view = m.View()
	assert.Contains(t, view, "until 10:25:00")
	assert.NotContains(t, view, "[Paused]")
}

func TestWindowResize(t *testing.T) {
	m := newModel(t, newFakeEngine(), Options{})

	m.Update(tea.WindowSizeMsg{Width: 40})
	assert.Equal(t, 32, m.progress.Width)

	m.Update(tea.WindowSizeMsg{Width: 400})
	assert.Equal(t, maxWidth, m.progress.Width)
}

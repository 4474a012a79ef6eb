package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breezeflow/breeze/internal/logging"
	"github.com/breezeflow/breeze/internal/session"
	"github.com/breezeflow/breeze/store"
	"github.com/breezeflow/breeze/timer"
)

var epoch = time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)

type fixedClock struct {
	now time.Time
	mu  sync.Mutex
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

type idleScheduler struct{}

func (idleScheduler) Start(func()) {}

func (idleScheduler) Stop() {}

type fixture struct {
	engine *timer.Engine
	clock  *fixedClock
	server *Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := &fixedClock{now: epoch}

	engine, err := timer.New(store.NewMemory(), timer.Config{},
		timer.WithClock(clock),
		timer.WithScheduler(idleScheduler{}),
	)
	require.NoError(t, err)
	t.Cleanup(engine.Close)

	engine.Initialize()

	return &fixture{
		engine: engine,
		clock:  clock,
		server: New(engine, WithNow(clock.Now)),
	}
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()

	f.server.Handler().ServeHTTP(rec, req)

	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) timer.State {
	t.Helper()

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var st timer.State
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&st))

	return st
}

func TestGetTimer(t *testing.T) {
	f := newFixture(t)

	st := decodeState(t, f.do(t, http.MethodGet, "/api/timer", ""))

	assert.Equal(t, timer.NewState(timer.DefaultDurations()), st)
}

func TestTimerOperations(t *testing.T) {
	f := newFixture(t)

	st := decodeState(t, f.do(t, http.MethodPost, "/api/timer/toggle", ""))
	assert.True(t, st.IsRunning)

	f.clock.Advance(10 * time.Second)
	f.engine.Tick()

	st = decodeState(t, f.do(t, http.MethodPost, "/api/timer/reset", ""))
	assert.False(t, st.IsRunning)
	assert.Equal(t, 1500, st.TimeLeftSeconds)

	st = decodeState(t, f.do(t, http.MethodPost, "/api/timer/skip", ""))
	assert.Equal(t, session.ShortBreak, st.SessionType)
	assert.Equal(t, 1, st.PomodorosCompleted)

	rec := f.do(t, http.MethodGet, "/api/timer/skip", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestUpdateDurations(t *testing.T) {
	f := newFixture(t)

	st := decodeState(t, f.do(t, http.MethodPut, "/api/timer/durations",
		`{"work": 3000, "shortBreak": 600, "longBreak": 1200}`,
	))

	assert.Equal(t, 3000, st.WorkDurationSeconds)
	assert.Equal(t, 3000, st.TimeLeftSeconds)
	assert.Equal(t, 1200, st.LongBreakDurationSeconds)

	testCases := []struct {
		name string
		body string
	}{
		{"not json", `work=25`},
		{"unknown field", `{"work": 1500, "shortBreak": 300, "longBreak": 900, "tags": []}`},
		{"zero duration", `{"work": 1500, "shortBreak": 0, "longBreak": 900}`},
		{"negative duration", `{"work": -60, "shortBreak": 300, "longBreak": 900}`},
		{"wraps around when converted", `{"work": 18446744075, "shortBreak": 300, "longBreak": 900}`},
		{"longer than twelve hours", `{"work": 43201, "shortBreak": 300, "longBreak": 900}`},
		{"beyond int64", `{"work": 99999999999999999999, "shortBreak": 300, "longBreak": 900}`},
		{"short break as long as work", `{"work": 600, "shortBreak": 600, "longBreak": 900}`},
		{"long break shorter than short break", `{"work": 1500, "shortBreak": 300, "longBreak": 60}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPut, "/api/timer/durations", tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}

	// rejected updates leave the state alone
	st = decodeState(t, f.do(t, http.MethodGet, "/api/timer", ""))
	assert.Equal(t, 3000, st.WorkDurationSeconds)
}

func TestUpdateDurationsAtTheLimit(t *testing.T) {
	f := newFixture(t)

	st := decodeState(t, f.do(t, http.MethodPut, "/api/timer/durations",
		`{"work": 43200, "shortBreak": 1, "longBreak": 1}`,
	))

	assert.Equal(t, 43200, st.WorkDurationSeconds)
	assert.Equal(t, 43200, st.TimeLeftSeconds)
	assert.Equal(t, 1, st.ShortBreakDurationSeconds)
}

var errLogUnavailable = errors.New("focus log unavailable")

// brokenLog is an engine whose focus log cannot be read.
type brokenLog struct {
	*timer.Engine
}

func (brokenLog) Records() ([]session.Record, error) {
	return nil, errLogUnavailable
}

func TestInternalErrorsAreLogged(t *testing.T) {
	f := newFixture(t)

	var buf bytes.Buffer

	srv := New(brokenLog{f.engine},
		WithNow(f.clock.Now),
		WithLogger(logging.NewWithWriter(&buf, "info")),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/focus-sessions", nil)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "focus log unavailable", body["error"])

	assert.Contains(t, buf.String(), "request failed")
	assert.Contains(t, buf.String(), "focus log unavailable")
}

func TestFocusSessions(t *testing.T) {
	f := newFixture(t)

	f.engine.Toggle()
	f.clock.Advance(20 * time.Minute)
	f.engine.Tick()
	f.engine.Skip()

	rec := f.do(t, http.MethodGet, "/api/focus-sessions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var records []session.Record
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&records))
	require.Len(t, records, 1)
	assert.Equal(t, 1200, records[0].Duration)

	rec = f.do(t, http.MethodGet, "/api/focus-sessions/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp statsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.Equal(t, 1, resp.Today.Sessions)
	assert.Equal(t, 20, resp.Today.Minutes)
	require.NotNil(t, resp.Summary)
	assert.Equal(t, 20, resp.Summary.TotalMinutes)
	assert.Equal(t, 7, resp.Summary.Days)
}

func TestStatsRange(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet,
		"/api/focus-sessions/stats?start=2026-03-01&end=2026-03-10", "",
	)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp statsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 10, resp.Summary.Days)
	assert.Zero(t, resp.Summary.TotalMinutes)

	rec = f.do(t, http.MethodGet,
		"/api/focus-sessions/stats?start=2026-03-10&end=2026-03-01", "",
	)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStreamEvents(t *testing.T) {
	f := newFixture(t)

	srv := httptest.NewServer(f.server.Handler())
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		srv.URL+"/api/timer/events", http.NoBody,
	)
	require.NoError(t, err)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)

	next := func() timer.State {
		t.Helper()

		var st timer.State

		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)

			data, ok := strings.CutPrefix(line, "data: ")
			if !ok {
				continue
			}

			require.NoError(t, json.Unmarshal([]byte(data), &st))

			return st
		}
	}

	assert.False(t, next().IsRunning)

	f.engine.Toggle()

	assert.True(t, next().IsRunning)
}

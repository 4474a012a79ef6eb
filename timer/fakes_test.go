package timer_test

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/breezeflow/breeze/store"
	"github.com/breezeflow/breeze/timer"
)

var epoch = time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)

type fakeClock struct {
	now time.Time
	mu  sync.Mutex
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: epoch}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// manualScheduler never fires on its own; tests drive Tick directly.
type manualScheduler struct {
	tick   func()
	starts int
	stops  int
}

func (s *manualScheduler) Start(tick func()) {
	s.tick = tick
	s.starts++
}

func (s *manualScheduler) Stop() {
	s.tick = nil
	s.stops++
}

func (s *manualScheduler) Running() bool {
	return s.tick != nil
}

type notification struct {
	title   string
	message string
}

type recordingNotifier struct {
	err   error
	calls []notification
}

func (n *recordingNotifier) Notify(title, message string) error {
	n.calls = append(n.calls, notification{title, message})
	return n.err
}

var errDiskFull = errors.New("disk full")

// failingStore wraps a memory store and fails writes while failing is set.
type failingStore struct {
	*store.Memory
	failing bool
}

func (f *failingStore) Set(key string, value []byte) error {
	if f.failing {
		return errDiskFull
	}

	return f.Memory.Set(key, value)
}

func (f *failingStore) Remove(key string) error {
	if f.failing {
		return errDiskFull
	}

	return f.Memory.Remove(key)
}

type fixture struct {
	db        store.Store
	clock     *fakeClock
	scheduler *manualScheduler
	notifier  *recordingNotifier
	engine    *timer.Engine
}

func newFixture(t *testing.T, db store.Store, cfg timer.Config) *fixture {
	t.Helper()

	if db == nil {
		db = store.NewMemory()
	}

	f := &fixture{
		db:        db,
		clock:     newFakeClock(),
		scheduler: &manualScheduler{},
		notifier:  &recordingNotifier{},
	}

	e, err := timer.New(
		db,
		cfg,
		timer.WithClock(f.clock),
		timer.WithScheduler(f.scheduler),
		timer.WithNotifier(f.notifier),
		timer.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)

	f.engine = e

	t.Cleanup(e.Close)

	return f
}

// tick advances the clock by a second and ticks n times.
func (f *fixture) tick(n int) timer.State {
	var st timer.State

	for range n {
		f.clock.Advance(time.Second)
		st = f.engine.Tick()
	}

	return st
}

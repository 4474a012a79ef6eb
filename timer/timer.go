// Package timer operates the Breeze countdown timer and handles the recovery
// of interrupted timers
package timer

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/breezeflow/breeze/internal/session"
	"github.com/breezeflow/breeze/store"
)

const defaultLongBreakInterval = 4

// Notifier alerts the user when a session ends. Implementations are best
// effort; the engine logs and ignores their errors.
type Notifier interface {
	Notify(title, message string) error
}

type nopNotifier struct{}

func (nopNotifier) Notify(_, _ string) error {
	return nil
}

// Config holds the engine settings.
type Config struct {
	Messages          session.Message
	Durations         Durations
	LongBreakInterval int
	AutoStartWork     bool
	AutoStartBreak    bool
}

// DefaultMessages maps each session to the message shown when it is next.
func DefaultMessages() session.Message {
	return session.Message{
		session.Work:       "Focus on your task",
		session.ShortBreak: "Take a breather",
		session.LongBreak:  "Take a long break",
	}
}

// Option configures the collaborators of an Engine.
type Option func(*Engine)

func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		e.scheduler = s
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// Engine owns the authoritative timer state. All operations are serialized
// and persist the resulting state before returning.
type Engine struct {
	db        store.Store
	clock     Clock
	notifier  Notifier
	scheduler Scheduler
	logger    *slog.Logger
	lastTick  time.Time
	cfg       Config
	subs      []chan State
	pending   []session.Record
	state     State
	// countdownFrom is the length the current session started counting
	// down from. It differs from the session length after the durations
	// change while the timer runs.
	countdownFrom int
	mu            sync.Mutex
}

// New creates an engine backed by db. Call Initialize before use.
func New(db store.Store, cfg Config, opts ...Option) (*Engine, error) {
	if cfg.Durations == (Durations{}) {
		cfg.Durations = DefaultDurations()
	}

	if err := cfg.Durations.Validate(); err != nil {
		return nil, err
	}

	if cfg.LongBreakInterval <= 0 {
		cfg.LongBreakInterval = defaultLongBreakInterval
	}

	if cfg.Messages == nil {
		cfg.Messages = DefaultMessages()
	}

	e := &Engine{
		db:        db,
		cfg:       cfg,
		clock:     SystemClock{},
		notifier:  nopNotifier{},
		scheduler: NewTickerScheduler(time.Second),
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.state = NewState(cfg.Durations)
	e.countdownFrom = e.state.TimeLeftSeconds

	return e, nil
}

// Initialize loads the persisted state and reconciles a running countdown
// with the wall-clock time that passed since it was last saved.
func (e *Engine) Initialize() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()

	st, err := e.load()
	if err != nil {
		e.handleLoadErr(err)

		st = NewState(e.cfg.Durations)
	}

	e.state = st
	e.countdownFrom = max(st.CurrentDuration(), st.TimeLeftSeconds)
	e.stopLocked()

	if e.state.IsRunning {
		e.reconcileLocked(now)
	}

	if e.state.TimeLeftSeconds > e.state.CurrentDuration() {
		e.state.TimeLeftSeconds = e.state.CurrentDuration()
	}

	e.countdownFrom = e.state.CurrentDuration()

	if d := e.state.durations(); d != e.cfg.Durations {
		e.logger.Info(
			"applying configured durations",
			slog.Any("stored", d),
			slog.Any("configured", e.cfg.Durations),
		)

		e.applyDurationsLocked(e.cfg.Durations)
	}

	if e.state.IsRunning {
		e.startLocked(now)
	}

	e.persistLocked(now)
	e.emitLocked()

	return e.state
}

func (e *Engine) handleLoadErr(err error) {
	if errors.Is(err, store.ErrNotFound) {
		return
	}

	if errors.Is(err, ErrMalformedState) {
		e.logger.Warn(
			"discarding malformed timer state",
			slog.Any("error", err),
		)

		rmErr := e.db.Remove(store.KeyTimerState)
		if rmErr != nil {
			e.logger.Error(
				"unable to remove malformed timer state",
				slog.Any("error", ErrPersistence.Wrap(rmErr)),
			)
		}

		return
	}

	e.logger.Error("unable to load timer state", slog.Any("error", err))
}

// reconcileLocked subtracts the time that passed since the state was saved.
// A session that ran out in the meantime is completed as of the moment it
// ended, and the timer is left stopped.
func (e *Engine) reconcileLocked(now time.Time) {
	stored := e.state.TimeLeftSeconds
	saved := time.UnixMilli(e.state.LastPersistedAt)

	elapsed := int(max(now.Sub(saved), 0) / time.Second)

	e.state.TimeLeftSeconds = max(0, stored-elapsed)

	e.logger.Info(
		"reconciled running timer",
		slog.String("session", string(e.state.SessionType)),
		slog.Int("elapsed_seconds", elapsed),
		slog.Int("time_left", e.state.TimeLeftSeconds),
	)

	if e.state.TimeLeftSeconds > 0 {
		return
	}

	if stored > 0 {
		e.completeLocked(saved.Add(time.Duration(stored)*time.Second), false)
	}

	e.state.IsRunning = false
}

// Tick advances a running countdown. Ticks arriving less than a second after
// the last accepted tick are ignored; ticks arriving late subtract every
// whole second that passed.
func (e *Engine) Tick() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.IsRunning {
		return e.state
	}

	now := e.clock.Now()

	if e.lastTick.IsZero() || now.Before(e.lastTick) {
		e.lastTick = now
		return e.state
	}

	steps := int(now.Sub(e.lastTick) / time.Second)
	if steps < 1 {
		return e.state
	}

	e.lastTick = e.lastTick.Add(time.Duration(steps) * time.Second)
	e.state.TimeLeftSeconds = max(0, e.state.TimeLeftSeconds-steps)

	if e.state.TimeLeftSeconds == 0 {
		e.completeLocked(now, true)
	}

	e.persistLocked(now)
	e.emitLocked()

	return e.state
}

// Toggle starts a stopped timer or pauses a running one.
func (e *Engine) Toggle() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()

	if e.state.IsRunning {
		e.state.IsRunning = false
		e.stopLocked()
	} else {
		e.state.IsRunning = true
		e.startLocked(now)
	}

	e.persistLocked(now)
	e.emitLocked()

	return e.state
}

// Reset stops the timer and rewinds the current session.
func (e *Engine) Reset() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.IsRunning = false
	e.stopLocked()
	e.state.TimeLeftSeconds = e.state.CurrentDuration()
	e.countdownFrom = e.state.TimeLeftSeconds

	e.persistLocked(e.clock.Now())
	e.emitLocked()

	return e.state
}

// Skip ends the current session early.
func (e *Engine) Skip() State {
	return e.Complete()
}

// Complete ends the current session and moves on to the next one. A
// completed work session is appended to the focus log.
func (e *Engine) Complete() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()

	e.completeLocked(now, true)
	e.persistLocked(now)
	e.emitLocked()

	return e.state
}

// UpdateDurations changes the session lengths. A stopped timer whose current
// session length changed is rewound to the new length; a running timer keeps
// its remaining time until the next reset.
func (e *Engine) UpdateDurations(
	work, shortBreak, longBreak time.Duration,
) (State, error) {
	d := Durations{
		Work:       work,
		ShortBreak: shortBreak,
		LongBreak:  longBreak,
	}

	if err := d.Validate(); err != nil {
		return e.State(), err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.applyDurationsLocked(d)

	e.persistLocked(e.clock.Now())
	e.emitLocked()

	return e.state, nil
}

// applyDurationsLocked stores new session lengths. A stopped timer whose
// current session length changed is rewound.
func (e *Engine) applyDurationsLocked(d Durations) {
	previous := e.state.CurrentDuration()

	e.cfg.Durations = d
	e.state.WorkDurationSeconds = int(d.Work / time.Second)
	e.state.ShortBreakDurationSeconds = int(d.ShortBreak / time.Second)
	e.state.LongBreakDurationSeconds = int(d.LongBreak / time.Second)

	if !e.state.IsRunning && e.state.CurrentDuration() != previous {
		e.state.TimeLeftSeconds = e.state.CurrentDuration()
		e.countdownFrom = e.state.TimeLeftSeconds
	}
}

// Clear stops the timer, forgets the persisted state and returns to the
// defaults. The focus log is kept.
func (e *Engine) Clear() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopLocked()
	e.state = NewState(e.cfg.Durations)
	e.countdownFrom = e.state.TimeLeftSeconds

	err := e.db.Remove(store.KeyTimerState)
	if err != nil {
		e.logger.Error(
			"unable to clear timer state",
			slog.Any("error", ErrPersistence.Wrap(err)),
		)
	}

	e.emitLocked()

	return e.state
}

// State returns a snapshot of the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state
}

// Config returns the engine settings.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cfg
}

// Records returns the focus log, including records that could not be
// persisted yet.
func (e *Engine) Records() ([]session.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	records, err := store.Records(e.db)
	if err != nil {
		return nil, err
	}

	return append(records, e.pending...), nil
}

// Subscribe returns a channel that receives a snapshot after every change.
// Slow subscribers only see the latest snapshot.
func (e *Engine) Subscribe(buffer int) <-chan State {
	if buffer <= 0 {
		buffer = 1
	}

	ch := make(chan State, buffer)

	e.mu.Lock()
	e.subs = append(e.subs, ch)
	e.mu.Unlock()

	return ch
}

// Unsubscribe removes and closes a channel returned by Subscribe.
func (e *Engine) Unsubscribe(sub <-chan State) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, ch := range e.subs {
		if ch == sub {
			close(ch)
			e.subs = append(e.subs[:i], e.subs[i+1:]...)

			return
		}
	}
}

// Close stops the scheduler and closes all subscriptions. The persisted
// state is left as is so that a running timer can be recovered.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.scheduler.Stop()

	for _, ch := range e.subs {
		close(ch)
	}

	e.subs = nil
}

func (e *Engine) completeLocked(end time.Time, resume bool) {
	finished := e.state.SessionType

	var next session.Name

	if finished == session.Work {
		e.state.PomodorosCompleted++

		worked := max(e.countdownFrom-e.state.TimeLeftSeconds, 0)

		e.recordLocked(session.NewRecord(session.Work, end, worked))

		next = session.ShortBreak
		if e.state.PomodorosCompleted%e.cfg.LongBreakInterval == 0 {
			next = session.LongBreak
		}
	} else {
		next = session.Work
	}

	e.state.SessionType = next
	e.state.TimeLeftSeconds = e.state.Duration(next)
	e.countdownFrom = e.state.TimeLeftSeconds
	e.state.IsRunning = false
	e.stopLocked()

	e.logger.Info(
		"session completed",
		slog.String("session", string(finished)),
		slog.String("next", string(next)),
		slog.Int("pomodoros", e.state.PomodorosCompleted),
	)

	e.notifyLocked(finished, next)

	if resume && e.autoStart(next) {
		e.state.IsRunning = true
		e.startLocked(e.clock.Now())
	}
}

func (e *Engine) autoStart(next session.Name) bool {
	if next == session.Work {
		return e.cfg.AutoStartWork
	}

	return e.cfg.AutoStartBreak
}

func (e *Engine) notifyLocked(finished, next session.Name) {
	title := string(finished) + " is finished"

	err := e.notifier.Notify(title, e.cfg.Messages[next])
	if err != nil {
		e.logger.Debug("notification failed", slog.Any("error", err))
	}
}

// recordLocked appends r to the focus log. Records that cannot be written
// are kept in memory and retried with the next append.
func (e *Engine) recordLocked(r session.Record) {
	e.pending = append(e.pending, r)

	records, err := store.Records(e.db)
	if err != nil {
		if !errors.Is(err, store.ErrMalformedRecords) {
			e.logger.Error(
				"unable to read focus log",
				slog.Any("error", ErrPersistence.Wrap(err)),
			)

			return
		}

		e.logger.Warn("discarding malformed focus log", slog.Any("error", err))
	}

	records = append(records, e.pending...)

	err = store.SaveRecords(e.db, records)
	if err != nil {
		e.logger.Error(
			"unable to save focus log",
			slog.Any("error", ErrPersistence.Wrap(err)),
		)

		return
	}

	e.pending = nil
}

func (e *Engine) startLocked(now time.Time) {
	e.lastTick = now
	e.scheduler.Start(func() {
		e.Tick()
	})
}

func (e *Engine) stopLocked() {
	e.lastTick = time.Time{}
	e.scheduler.Stop()
}

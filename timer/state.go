package timer

import (
	"time"

	"github.com/breezeflow/breeze/internal/session"
)

// Default session lengths in seconds.
const (
	DefaultWorkSeconds       = 1500
	DefaultShortBreakSeconds = 300
	DefaultLongBreakSeconds  = 900
)

// State is the persisted state of the timer.
type State struct {
	SessionType               session.Name `json:"sessionType"`
	TimeLeftSeconds           int          `json:"timeLeftSeconds"`
	PomodorosCompleted        int          `json:"pomodorosCompleted"`
	WorkDurationSeconds       int          `json:"workDurationSeconds"`
	ShortBreakDurationSeconds int          `json:"shortBreakDurationSeconds"`
	LongBreakDurationSeconds  int          `json:"longBreakDurationSeconds"`
	// LastPersistedAt is the wall-clock time (epoch ms) of the last save made
	// while the timer was running
	LastPersistedAt int64 `json:"lastPersistedAtEpochMillis"`
	IsRunning       bool  `json:"isRunning"`
}

// Durations holds the configured session lengths.
type Durations struct {
	Work       time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
}

// DefaultDurations returns the 25/5/15 minute durations.
func DefaultDurations() Durations {
	return Durations{
		Work:       DefaultWorkSeconds * time.Second,
		ShortBreak: DefaultShortBreakSeconds * time.Second,
		LongBreak:  DefaultLongBreakSeconds * time.Second,
	}
}

// MaxDuration is the longest accepted session length.
const MaxDuration = 12 * time.Hour

// Validate checks that every duration is a whole number of seconds between
// one second and MaxDuration, and that the short break is shorter than work
// and no longer than the long break.
func (d Durations) Validate() error {
	for _, v := range []struct {
		name session.Name
		d    time.Duration
	}{
		{session.Work, d.Work},
		{session.ShortBreak, d.ShortBreak},
		{session.LongBreak, d.LongBreak},
	} {
		if v.d < time.Second || v.d > MaxDuration || v.d%time.Second != 0 {
			return ErrInvalidDuration.Fmt(v.name, MaxDuration, v.d)
		}
	}

	if d.ShortBreak >= d.Work || d.LongBreak < d.ShortBreak {
		return ErrDurationOrder.Fmt(d.Work, d.ShortBreak, d.LongBreak)
	}

	return nil
}

// NewState returns a stopped work session using the provided durations.
func NewState(d Durations) State {
	s := State{
		SessionType:               session.Work,
		WorkDurationSeconds:       int(d.Work / time.Second),
		ShortBreakDurationSeconds: int(d.ShortBreak / time.Second),
		LongBreakDurationSeconds:  int(d.LongBreak / time.Second),
	}

	s.TimeLeftSeconds = s.WorkDurationSeconds

	return s
}

// Duration returns the configured length of the named session in seconds.
func (s *State) Duration(name session.Name) int {
	switch name {
	case session.ShortBreak:
		return s.ShortBreakDurationSeconds
	case session.LongBreak:
		return s.LongBreakDurationSeconds
	default:
		return s.WorkDurationSeconds
	}
}

func (s *State) durations() Durations {
	return Durations{
		Work:       time.Duration(s.WorkDurationSeconds) * time.Second,
		ShortBreak: time.Duration(s.ShortBreakDurationSeconds) * time.Second,
		LongBreak:  time.Duration(s.LongBreakDurationSeconds) * time.Second,
	}
}

// CurrentDuration returns the length of the current session in seconds.
func (s *State) CurrentDuration() int {
	return s.Duration(s.SessionType)
}

// Progress returns the fraction of the current session that has elapsed.
func (s *State) Progress() float64 {
	total := s.CurrentDuration()
	if total <= 0 {
		return 0
	}

	p := float64(total-s.TimeLeftSeconds) / float64(total)

	return min(max(p, 0), 1)
}

// EndTime returns the time at which a running session will end.
func (s *State) EndTime(now time.Time) time.Time {
	return now.Add(time.Duration(s.TimeLeftSeconds) * time.Second)
}

// Validate reports a malformed state.
func (s *State) Validate() error {
	if !s.SessionType.Valid() {
		return ErrMalformedState.Fmt("unknown session type " + string(s.SessionType))
	}

	if s.WorkDurationSeconds <= 0 ||
		s.ShortBreakDurationSeconds <= 0 ||
		s.LongBreakDurationSeconds <= 0 {
		return ErrMalformedState.Fmt("durations must be positive")
	}

	if s.TimeLeftSeconds < 0 {
		return ErrMalformedState.Fmt("negative time left")
	}

	if s.PomodorosCompleted < 0 {
		return ErrMalformedState.Fmt("negative pomodoro count")
	}

	return nil
}

package timer

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/breezeflow/breeze/internal/osutil"
	"github.com/breezeflow/breeze/internal/session"
)

// Status is a snapshot of the timer written to the status file so that other
// processes can report it while the store is locked.
type Status struct {
	EndTime           time.Time    `json:"end_date"`
	Name              session.Name `json:"name"`
	TimeLeftSeconds   int          `json:"time_left_seconds"`
	WorkCycle         int          `json:"work_cycle"`
	LongBreakInterval int          `json:"long_break_interval"`
	Paused            bool         `json:"paused"`
}

// NewStatus describes s as seen at now.
func NewStatus(s State, interval int, now time.Time) Status {
	if interval <= 0 {
		interval = defaultLongBreakInterval
	}

	st := Status{
		Name:              s.SessionType,
		TimeLeftSeconds:   s.TimeLeftSeconds,
		WorkCycle:         s.PomodorosCompleted%interval + 1,
		LongBreakInterval: interval,
		Paused:            !s.IsRunning,
	}

	if s.IsRunning {
		st.EndTime = s.EndTime(now)
	}

	return st
}

// Remaining returns the time left in the session at now.
func (s *Status) Remaining(now time.Time) time.Duration {
	if s.Paused {
		return time.Duration(s.TimeLeftSeconds) * time.Second
	}

	return s.EndTime.Sub(now).Truncate(time.Second)
}

// Label returns the session tag printed by the status command.
func (s *Status) Label() string {
	if s.Name == session.Work {
		return fmt.Sprintf("[Work %d/%d]", s.WorkCycle, s.LongBreakInterval)
	}

	return "[" + string(s.Name) + "]"
}

// WriteStatusFile replaces the status file with s.
func WriteStatusFile(path string, s Status) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, b, osutil.FilePermission)
}

// ReadStatusFile reads the status file written by a running timer.
func ReadStatusFile(path string) (*Status, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Status

	if err := json.Unmarshal(b, &s); err != nil {
		return nil, ErrMalformedState.Fmt("status file").Wrap(err)
	}

	return &s, nil
}

// Package session defines focus sessions
package session

import (
	"time"

	"github.com/google/uuid"
)

// Name represents the session name.
type Name string

const (
	Work       Name = "Work session"
	ShortBreak Name = "Short break"
	LongBreak  Name = "Long break"
)

// Valid reports whether n is one of the known session names.
func (n Name) Valid() bool {
	switch n {
	case Work, ShortBreak, LongBreak:
		return true
	}

	return false
}

// IsBreak reports whether n is a break session.
func (n Name) IsBreak() bool {
	return n == ShortBreak || n == LongBreak
}

// Message maps a session to a message.
type Message map[Name]string

// Record is an entry in the focus log. It is created when a work session
// completes and never modified afterwards.
type Record struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	ID        string    `json:"id"`
	Name      Name      `json:"name"`
	Duration  int       `json:"duration"` // seconds
	Completed bool      `json:"completed"`
}

// NewRecord creates a completed record for a session that ended at end after
// running for the given number of seconds.
func NewRecord(name Name, end time.Time, seconds int) Record {
	return Record{
		ID:        uuid.NewString(),
		Name:      name,
		StartTime: end.Add(-time.Duration(seconds) * time.Second),
		EndTime:   end,
		Duration:  seconds,
		Completed: true,
	}
}

// Elapsed returns the recorded session length.
func (r *Record) Elapsed() time.Duration {
	return time.Duration(r.Duration) * time.Second
}

package store

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/breezeflow/breeze/internal/session"
)

// legacyRecord is the focus log entry written by the Breeze Flow web app.
// Its duration is in minutes and its date marks the moment it was saved.
type legacyRecord struct {
	Date      time.Time `json:"date"`
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Duration  int       `json:"duration"`
	Completed bool      `json:"completed"`
}

func (l *legacyRecord) convert() session.Record {
	secs := max(l.Duration, 0) * 60

	r := session.NewRecord(session.Work, l.Date, secs)
	r.Completed = l.Completed

	if l.ID != "" {
		r.ID = l.ID
	}

	if l.Type == "shortBreak" {
		r.Name = session.ShortBreak
	} else if l.Type == "longBreak" {
		r.Name = session.LongBreak
	}

	return r
}

func migrateRecord(raw json.RawMessage) (session.Record, bool, error) {
	var fields map[string]json.RawMessage

	err := json.Unmarshal(raw, &fields)
	if err != nil {
		return session.Record{}, false, err
	}

	_, hasEnd := fields["end_time"]
	_, hasDate := fields["date"]

	if hasEnd || !hasDate {
		var r session.Record

		err = json.Unmarshal(raw, &r)

		return r, false, err
	}

	var l legacyRecord

	err = json.Unmarshal(raw, &l)
	if err != nil {
		return session.Record{}, false, err
	}

	return l.convert(), true, nil
}

// Migrate rewrites focus log entries saved by the web app in the current
// format. It returns the number of converted entries.
func Migrate(s Store) (int, error) {
	b, err := s.Get(KeyFocusSessions)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}

	if err != nil {
		return 0, err
	}

	var entries []json.RawMessage

	err = json.Unmarshal(b, &entries)
	if err != nil {
		return 0, ErrMalformedRecords.Wrap(err)
	}

	records := make([]session.Record, 0, len(entries))

	var converted int

	for _, raw := range entries {
		r, legacy, err := migrateRecord(raw)
		if err != nil {
			return 0, ErrMalformedRecords.Wrap(err)
		}

		if legacy {
			converted++
		}

		if r.ID == "" {
			r.ID = uuid.NewString()
		}

		records = append(records, r)
	}

	if converted == 0 {
		return 0, nil
	}

	return converted, SaveRecords(s, records)
}

package store

import (
	"encoding/json"
	"errors"

	"github.com/breezeflow/breeze/internal/apperr"
	"github.com/breezeflow/breeze/internal/session"
)

// ErrMalformedRecords is returned when the focus log cannot be decoded.
var ErrMalformedRecords = &apperr.Error{
	Message: "focus log is malformed",
}

// Records returns the full focus log in insertion order. A missing log is
// an empty log.
func Records(s Store) ([]session.Record, error) {
	b, err := s.Get(KeyFocusSessions)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	var records []session.Record

	err = json.Unmarshal(b, &records)
	if err != nil {
		return nil, ErrMalformedRecords.Wrap(err)
	}

	return records, nil
}

// SaveRecords overwrites the focus log.
func SaveRecords(s Store, records []session.Record) error {
	b, err := json.Marshal(records)
	if err != nil {
		return err
	}

	return s.Set(KeyFocusSessions, b)
}

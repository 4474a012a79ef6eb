package timer

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/breezeflow/breeze/store"
)

// Load reads and validates the persisted state without reconciling it.
func Load(db store.Store) (State, error) {
	b, err := db.Get(store.KeyTimerState)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return State{}, err
		}

		return State{}, ErrPersistence.Wrap(err)
	}

	var st State

	err = json.Unmarshal(b, &st)
	if err != nil {
		return State{}, ErrMalformedState.Fmt("invalid JSON").Wrap(err)
	}

	if err := st.Validate(); err != nil {
		return State{}, err
	}

	return st, nil
}

func (e *Engine) load() (State, error) {
	return Load(e.db)
}

// persistLocked saves the state. Failures are logged; the in-memory state
// stays authoritative.
func (e *Engine) persistLocked(now time.Time) {
	if e.state.IsRunning {
		e.state.LastPersistedAt = now.UnixMilli()
	}

	b, err := json.Marshal(e.state)
	if err == nil {
		err = e.db.Set(store.KeyTimerState, b)
	}

	if err != nil {
		e.logger.Error(
			"unable to persist timer state",
			slog.Any("error", ErrPersistence.Wrap(err)),
		)
	}
}

// emitLocked delivers the current state to every subscriber, replacing an
// undelivered snapshot when a subscriber's buffer is full.
func (e *Engine) emitLocked() {
	for _, ch := range e.subs {
		select {
		case ch <- e.state:
			continue
		default:
		}

		select {
		case <-ch:
		default:
		}

		select {
		case ch <- e.state:
		default:
		}
	}
}

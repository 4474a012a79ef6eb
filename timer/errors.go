package timer

import "github.com/breezeflow/breeze/internal/apperr"

var (
	// ErrPersistence wraps failures to read, write, or remove persisted data.
	ErrPersistence = &apperr.Error{
		Message: "persisting timer state failed",
	}

	// ErrMalformedState indicates a persisted state that could not be decoded
	// or failed validation.
	ErrMalformedState = &apperr.Error{
		Message: "malformed timer state: %s",
	}

	ErrInvalidDuration = &apperr.Error{
		Message: "%s duration must be a whole number of seconds between 1s and %v, got %v",
	}

	ErrDurationOrder = &apperr.Error{
		Message: "short break must be shorter than work and no longer than the long break (work=%v short=%v long=%v)",
	}
)

// Package notify delivers the alerts raised when a session ends
package notify

import (
	"errors"
	"log/slog"

	"github.com/gen2brain/beeep"

	"github.com/breezeflow/breeze/internal/apperr"
)

var (
	ErrNotification = &apperr.Error{
		Message: "unable to display notification",
	}

	ErrUnsupportedSound = &apperr.Error{
		Message: "unsupported sound format %q: use ogg, mp3, flac or wav",
	}

	ErrSound = &apperr.Error{
		Message: "unable to play sound",
	}

	ErrCommand = &apperr.Error{
		Message: "unable to run session command",
	}
)

// Notifier alerts the user that a session ended.
type Notifier interface {
	Notify(title, message string) error
}

// Desktop shows a desktop notification. The notification is sent in the
// background so that a slow notification daemon never holds up the caller.
type Desktop struct {
	send func(title, message, icon string) error
	// done receives the result of each send
	done func(err error)
	Icon string
}

// NewDesktop returns a notifier that displays desktop notifications with
// the icon at the given path (which may be empty).
func NewDesktop(icon string) *Desktop {
	return &Desktop{
		Icon: icon,
		send: func(title, message, icon string) error {
			return beeep.Notify(title, message, icon)
		},
		done: func(err error) {
			if err != nil {
				slog.Debug("desktop notification failed", slog.Any("error", err))
			}
		},
	}
}

func (d *Desktop) Notify(title, message string) error {
	go func() {
		err := d.send(title, message, d.Icon)
		if err != nil {
			err = ErrNotification.Wrap(err)
		}

		d.done(err)
	}()

	return nil
}

// Multi fans a notification out to several notifiers. Every notifier is
// called even if an earlier one fails.
type Multi []Notifier

func (m Multi) Notify(title, message string) error {
	var errs []error

	for _, n := range m {
		if n == nil {
			continue
		}

		err := n.Notify(title, message)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

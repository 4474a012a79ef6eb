package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/breezeflow/breeze/timer"
)

// streamEvents sends the current state followed by every change as
// server-sent events until the client goes away.
func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	events := s.engine.Subscribe(1)
	defer s.engine.Unsubscribe(events)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	if err := writeEvent(w, s.engine.State()); err != nil {
		return
	}

	flusher.Flush()

	for {
		select {
		case st, ok := <-events:
			if !ok {
				return
			}

			if err := writeEvent(w, st); err != nil {
				s.logger.Debug("event stream closed", slog.Any("error", err))
				return
			}

			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, st timer.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "event: state\ndata: %s\n\n", data)

	return err
}

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/breezeflow/breeze/internal/session"
	"github.com/breezeflow/breeze/internal/timeutil"
	"github.com/breezeflow/breeze/stats"
	"github.com/breezeflow/breeze/timer"
)

// durationsRequest holds session lengths in seconds.
type durationsRequest struct {
	Work       int64 `json:"work"`
	ShortBreak int64 `json:"shortBreak"`
	LongBreak  int64 `json:"longBreak"`
}

// statsResponse is the body of the stats endpoint.
type statsResponse struct {
	Summary *stats.Summary     `json:"summary"`
	Today   stats.TodaySummary `json:"today"`
}

func (s *Server) getTimer(w http.ResponseWriter, _ *http.Request) error {
	s.respondJSON(w, s.engine.State(), http.StatusOK)

	return nil
}

func (s *Server) toggle(w http.ResponseWriter, _ *http.Request) error {
	s.respondJSON(w, s.engine.Toggle(), http.StatusOK)

	return nil
}

func (s *Server) reset(w http.ResponseWriter, _ *http.Request) error {
	s.respondJSON(w, s.engine.Reset(), http.StatusOK)

	return nil
}

func (s *Server) skip(w http.ResponseWriter, _ *http.Request) error {
	s.respondJSON(w, s.engine.Skip(), http.StatusOK)

	return nil
}

func (s *Server) updateDurations(w http.ResponseWriter, r *http.Request) error {
	var req durationsRequest

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		return badRequest(errBadRequest.Wrap(err))
	}

	work, err := seconds(session.Work, req.Work)
	if err != nil {
		return badRequest(err)
	}

	shortBreak, err := seconds(session.ShortBreak, req.ShortBreak)
	if err != nil {
		return badRequest(err)
	}

	longBreak, err := seconds(session.LongBreak, req.LongBreak)
	if err != nil {
		return badRequest(err)
	}

	st, err := s.engine.UpdateDurations(work, shortBreak, longBreak)
	if err != nil {
		if errors.Is(err, timer.ErrInvalidDuration) ||
			errors.Is(err, timer.ErrDurationOrder) {
			return badRequest(err)
		}

		return err
	}

	s.respondJSON(w, st, http.StatusOK)

	return nil
}

// seconds converts a request value to a duration. Values outside
// [1, MaxDuration] are rejected before the conversion can overflow.
func seconds(name session.Name, v int64) (time.Duration, error) {
	if v < 1 || v > int64(timer.MaxDuration/time.Second) {
		return 0, timer.ErrInvalidDuration.Fmt(name, timer.MaxDuration, v)
	}

	return time.Duration(v) * time.Second, nil
}

func (s *Server) listRecords(w http.ResponseWriter, _ *http.Request) error {
	records, err := s.engine.Records()
	if err != nil {
		return err
	}

	s.respondJSON(w, records, http.StatusOK)

	return nil
}

// getStats returns today's totals and a summary of the period given by the
// start and end query parameters (YYYY-MM-DD). The period defaults to the
// last seven days.
func (s *Server) getStats(w http.ResponseWriter, r *http.Request) error {
	now := s.now()
	query := r.URL.Query()

	startTime, err := time.ParseInLocation(
		time.DateOnly,
		query.Get("start"),
		now.Location(),
	)
	if err != nil {
		startTime = timeutil.RoundToStart(now.AddDate(0, 0, -6))
	}

	endTime, err := time.ParseInLocation(
		time.DateOnly,
		query.Get("end"),
		now.Location(),
	)
	if err != nil {
		endTime = now
	}

	endTime = timeutil.RoundToEnd(endTime)

	if endTime.Before(startTime) {
		return badRequest(errBadRequest.Wrap(errors.New("end is before start")))
	}

	records, err := s.engine.Records()
	if err != nil {
		return err
	}

	s.respondJSON(w, statsResponse{
		Today:   stats.Today(records, now),
		Summary: stats.Compute(records, startTime, endTime),
	}, http.StatusOK)

	return nil
}

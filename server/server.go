// Package server exposes the running timer over a local JSON API
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/breezeflow/breeze/internal/apperr"
	"github.com/breezeflow/breeze/internal/logging"
	"github.com/breezeflow/breeze/internal/session"
	"github.com/breezeflow/breeze/timer"
)

const shutdownTimeout = 5 * time.Second

var (
	errBadRequest = &apperr.Error{
		Message: "invalid request body",
	}

	errServe = &apperr.Error{
		Message: "unable to serve the timer API on %s",
	}
)

// Engine is the part of the timer engine exposed over HTTP.
type Engine interface {
	State() timer.State
	Toggle() timer.State
	Reset() timer.State
	Skip() timer.State
	UpdateDurations(work, shortBreak, longBreak time.Duration) (timer.State, error)
	Records() ([]session.Record, error)
	Subscribe(buffer int) <-chan timer.State
	Unsubscribe(sub <-chan timer.State)
}

// Server routes API requests to the engine.
type Server struct {
	engine Engine
	logger *slog.Logger
	now    func() time.Time
	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithNow sets the time source used for statistics.
func WithNow(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New returns a server for engine.
func New(engine Engine, opts ...Option) *Server {
	s := &Server{
		engine: engine,
		logger: logging.Discard(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.router = s.routes()

	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/timer", func(r chi.Router) {
			r.Method(http.MethodGet, "/", s.handle(s.getTimer))
			r.Method(http.MethodPost, "/toggle", s.handle(s.toggle))
			r.Method(http.MethodPost, "/reset", s.handle(s.reset))
			r.Method(http.MethodPost, "/skip", s.handle(s.skip))
			r.Method(http.MethodPut, "/durations", s.handle(s.updateDurations))
			r.Get("/events", s.streamEvents)
		})

		r.Route("/focus-sessions", func(r chi.Router) {
			r.Method(http.MethodGet, "/", s.handle(s.listRecords))
			r.Method(http.MethodGet, "/stats", s.handle(s.getStats))
		})
	})

	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves the API on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("serving timer API", slog.String("addr", addr))

		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errServe.Fmt(addr).Wrap(err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		shutdownTimeout,
	)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		return errServe.Fmt(addr).Wrap(err)
	}

	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return errServe.Fmt(addr).Wrap(err)
	}

	return nil
}

// httpError is an error with a response status.
type httpError struct {
	err    error
	status int
}

func (e *httpError) Error() string {
	return e.err.Error()
}

func (e *httpError) Unwrap() error {
	return e.err
}

func badRequest(err error) error {
	return &httpError{err: err, status: http.StatusBadRequest}
}

type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts fn to an http.Handler that turns returned errors into JSON
// error responses. Errors without a status are internal server errors.
func (s *Server) handle(fn handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		status := http.StatusInternalServerError

		var httpErr *httpError
		if errors.As(err, &httpErr) {
			status = httpErr.status
		}

		if status >= http.StatusInternalServerError {
			s.logger.ErrorContext(
				r.Context(),
				"request failed",
				slog.Any("error", err),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		}

		s.respondJSON(w, map[string]string{"error": err.Error()}, status)
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Debug("failed to encode response", slog.Any("error", err))
	}
}

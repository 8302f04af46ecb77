// Package server hosts a positioner behind HTTP.
//
// All positioner work runs on one event-loop goroutine. Handlers hand closures
// to the loop and wait for them, so the positioner never sees concurrent
// events even though requests arrive concurrently.
//
// # Endpoints
//
//   - GET  /healthz  liveness probe
//   - GET  /version  build information
//   - GET  /panel    current render tree
//   - POST /events   apply one event object or an array of them, in order
//
// Event objects use the script step shape:
//
//	{"type": "press", "x": 100, "y": 100}
//	{"type": "move", "x": 150, "y": 100}
//	{"type": "release"}
//	{"type": "click", "target": "block"}
//	{"type": "key", "key": "ArrowRight"}
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/designpanel/pkg/config"
	derrors "github.com/matzehuels/designpanel/pkg/errors"
	"github.com/matzehuels/designpanel/pkg/positioner"
)

const (
	// maxBodyBytes caps POST /events bodies.
	maxBodyBytes = 1 << 20
	// maxEventsPerRequest caps the events one POST /events may expand to.
	maxEventsPerRequest = 10000
)

// Server owns one document and one attached positioner.
type Server struct {
	cfg    *config.Config
	logger *log.Logger
	router chi.Router

	work      chan func()
	quit      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once

	// Owned by the loop goroutine.
	doc *positioner.Document
	pos *positioner.Positioner
}

// New creates a server and starts its event loop. Call Close to stop it.
func New(cfg *config.Config, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	block := positioner.NewHandle()
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		work:    make(chan func()),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
		doc:     positioner.NewDocument(),
		pos: positioner.New(
			cfg.Positioner(),
			positioner.FixedMeasurer(block, cfg.BlockSize()),
			positioner.WithHandle(block),
			positioner.WithLogger(logger),
		),
	}
	if err := s.pos.Attach(s.doc); err != nil {
		return nil, err
	}

	s.router = s.routes()
	go s.loop()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close stops the event loop and detaches the positioner. It is idempotent.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		close(s.quit)
		<-s.stopped
		s.pos.Detach()
	})
	return nil
}

func (s *Server) loop() {
	defer close(s.stopped)
	for {
		select {
		case fn := <-s.work:
			fn()
		case <-s.quit:
			return
		}
	}
}

// do runs fn on the event loop and waits for it. A panic in fn is reported
// as an internal error instead of stopping the loop.
func (s *Server) do(ctx context.Context, fn func()) error {
	done := make(chan error, 1)
	run := func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("event loop panic", "panic", r)
				done <- derrors.New(derrors.ErrCodeInternal, "panic: %v", r)
			}
		}()
		fn()
		done <- nil
	}
	select {
	case s.work <- run:
	case <-s.quit:
		return derrors.New(derrors.ErrCodeClosed, "server is shutting down")
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-done
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully and closes the server.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	s.logger.Info("stopped")
	return err
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Get("/panel", s.handlePanel)
	r.Post("/events", s.handleEvents)
	return r
}

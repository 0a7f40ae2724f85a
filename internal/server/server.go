// Package server exposes the drawing pipeline over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /api/drawings                 list stored drawings
//	POST   /api/drawings                 create a drawing from pipeline options
//	GET    /api/drawings/{id}            drawing record
//	GET    /api/drawings/{id}.{format}   rendered artifact
//	DELETE /api/drawings/{id}
//	GET    /api/drawings/{id}/stream     websocket feed of painted steps
//
// Only records are stored; artifacts are regenerated through the pipeline
// runner, whose cache makes repeated requests cheap.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/snaker/pkg/animate"
	"github.com/matzehuels/snaker/pkg/pipeline"
	"github.com/matzehuels/snaker/pkg/storage"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// Server serves drawings.
type Server struct {
	runner   *pipeline.Runner
	store    storage.Store
	logger   *log.Logger
	defaults pipeline.Options
	interval time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithDefaults sets the options that fill unset fields of create requests.
func WithDefaults(opts pipeline.Options) Option {
	return func(s *Server) { s.defaults = opts }
}

// WithInterval sets the delay between streamed steps.
func WithInterval(d time.Duration) Option {
	return func(s *Server) { s.interval = d }
}

// New creates a server over runner and store.
func New(runner *pipeline.Runner, store storage.Store, opts ...Option) *Server {
	s := &Server{
		runner:   runner,
		store:    store,
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		interval: animate.DefaultInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/drawings", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Get("/{ref}", s.handleGet)
		r.Delete("/{ref}", s.handleDelete)
		r.Get("/{ref}/stream", s.handleStream)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

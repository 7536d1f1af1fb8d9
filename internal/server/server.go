// Package server exposes graph search and rendering over HTTP.
//
// Routes:
//
//	GET /healthz      liveness and build info
//	GET /v1/presets   configured graph presets
//	GET /v1/search    build a graph and search it
//	GET /v1/bench     compare strategies on one graph
//	GET /v1/render    render a graph with its search path highlighted
//	GET /metrics      Prometheus metrics
//
// Graphs are described by query parameters: either preset=<name> or
// kind, nodes, fanout and seed. Search endpoints take start, goal, strategy
// and limit. A search that finds no path is a 200 with "found": false.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/graphwalk/internal/config"
	"github.com/matzehuels/graphwalk/pkg/pipeline"
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// MaxNodes rejects requests for larger graphs. Zero means no cap.
	MaxNodes int
	// MaxEdges rejects requests whose graph could have more edges than
	// this. Zero means no cap.
	MaxEdges int
	// Presets are the graphs selectable with ?preset=.
	Presets []config.Preset
	// RequestTimeout bounds each request. Zero means 60s.
	RequestTimeout time.Duration
	Logger         *log.Logger
}

// Server serves the HTTP API on top of a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	cfg    Config
	logger *log.Logger
	router chi.Router
}

// New creates a server that runs requests through runner.
func New(runner *pipeline.Runner, cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	s := &Server{
		runner: runner,
		cfg:    cfg,
		logger: cfg.Logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/presets", s.handlePresets)
		r.Get("/search", s.handleSearch)
		r.Get("/bench", s.handleBench)
		r.Get("/render", s.handleRender)
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// Handler returns the HTTP handler for the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

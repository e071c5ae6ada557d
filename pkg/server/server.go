// Package server exposes the pipeline over HTTP.
//
//	GET  /healthz       liveness and build info
//	POST /v1/layout     view model of an inline dataset (JSON)
//	POST /v1/render     one rendered artifact (?format=svg|json)
//	POST /v1/drop       apply a drag to an inline dataset
//
// Request bodies are [pipeline.Options]. Datasets are sent inline, or with
// source "mongodb" on a server configured by [WithMongoURI]. The server never
// opens a file, URL or URI named by a client.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/rxtimeline/pkg/pipeline"
)

const (
	DefaultAddr         = ":8080"
	DefaultTimeout      = 30 * time.Second
	DefaultMaxBodyBytes = 8 << 20
	shutdownGrace       = 10 * time.Second

	// MongoSource is the request source that selects the server's MongoDB.
	MongoSource = "mongodb"
)

// Server serves the HTTP API.
type Server struct {
	runner       *pipeline.Runner
	logger       *log.Logger
	addr         string
	timeout      time.Duration
	maxBodyBytes int64
	mongoURI     string
	router       chi.Router
}

// Option configures a [Server].
type Option func(*Server)

func WithAddr(addr string) Option          { return func(s *Server) { s.addr = addr } }
func WithTimeout(d time.Duration) Option   { return func(s *Server) { s.timeout = d } }
func WithMaxBodyBytes(n int64) Option      { return func(s *Server) { s.maxBodyBytes = n } }
func WithLogger(logger *log.Logger) Option { return func(s *Server) { s.logger = logger } }

// WithMongoURI lets requests load from and save to the MongoDB at uri by
// naming [MongoSource] as their source. Requests choose the database,
// collection and series but never the URI.
func WithMongoURI(uri string) Option { return func(s *Server) { s.mongoURI = uri } }

// New returns a server backed by runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner:       runner,
		logger:       log.Default(),
		addr:         DefaultAddr,
		timeout:      DefaultTimeout,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
		r.Post("/drop", s.handleDrop)
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

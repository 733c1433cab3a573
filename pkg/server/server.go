// Package server exposes the layout pipeline and the map store over HTTP.
//
// # Routes
//
//	GET    /healthz                       liveness probe
//	POST   /v1/layout                     lay out a posted tree, returns the export
//	POST   /v1/render/{format}            lay out and render a posted tree
//	POST   /v1/maps                       store a map
//	GET    /v1/maps                       list stored maps
//	GET    /v1/maps/{id}                  load a map
//	PUT    /v1/maps/{id}                  replace a map
//	DELETE /v1/maps/{id}                  delete a map
//	GET    /v1/maps/{id}/render/{format}  render a stored map
//
// Errors are returned as JSON with the machine-readable code from
// [errors.Code] and an HTTP status derived from it.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/mindlayout/pkg/pipeline"
	"github.com/matzehuels/mindlayout/pkg/store"
)

// Defaults for Config.
const (
	DefaultAddr           = ":8080"
	DefaultMaxBodyBytes   = 10 << 20
	DefaultRequestTimeout = 30 * time.Second
	shutdownTimeout       = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	Addr           string
	Runner         *pipeline.Runner
	Store          store.Store
	Logger         *log.Logger
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

// Server serves the HTTP API.
type Server struct {
	cfg    Config
	router chi.Router
}

// New builds a server and its routes. Runner and Store default to an
// uncached runner and a memory store.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	s := &Server{cfg: cfg}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render/{format}", s.handleRender)

		r.Route("/maps", func(r chi.Router) {
			r.Post("/", s.handleCreateMap)
			r.Get("/", s.handleListMaps)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetMap)
				r.Put("/", s.handleUpdateMap)
				r.Delete("/", s.handleDeleteMap)
				r.Get("/render/{format}", s.handleRenderMap)
			})
		})
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.cfg.Logger.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	}
}

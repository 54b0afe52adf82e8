// Package server exposes a param graph over a read-only JSON HTTP API.
//
// Routes:
//
//	GET /healthz                         liveness
//	GET /stats                           graph size and blob format
//	GET /roots                           sorted root keys
//	GET /roots/{key}                     one root entry
//	GET /inputs/{id}                     an input node with all edges
//	GET /inputs/{id}/edges/{field}       one input edge, with enum values
//	GET /outputs/{id}                    an output node with all edges
//	GET /outputs/{id}/edges/{field}      one output edge
//
// Lookups go through a [reader.Reader], so a miss answers 404 and never
// panics, whatever the request contains.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/paramgraph/pkg/artifact"
	"github.com/matzehuels/paramgraph/pkg/observability"
	"github.com/matzehuels/paramgraph/pkg/reader"
)

// shutdownTimeout bounds graceful shutdown in ListenAndServe.
const shutdownTimeout = 5 * time.Second

// Server serves lookups against one graph.
type Server struct {
	reader *reader.Reader
	info   *artifact.Info
	logger *log.Logger
	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithInfo attaches artifact details reported by /stats.
func WithInfo(info artifact.Info) Option {
	return func(s *Server) { s.info = &info }
}

// New creates a server for r.
func New(r *reader.Reader, opts ...Option) *Server {
	s := &Server{reader: r, logger: log.Default()}
	for _, opt := range opts {
		opt(s)
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(s.observe)

	router.Get("/healthz", s.handleHealth)
	router.Get("/stats", s.handleStats)
	router.Route("/roots", func(r chi.Router) {
		r.Get("/", s.handleRoots)
		r.Get("/{key}", s.handleRoot)
	})
	router.Route("/inputs/{id}", func(r chi.Router) {
		r.Get("/", s.handleInputNode)
		r.Get("/edges/{field}", s.handleInputEdge)
	})
	router.Route("/outputs/{id}", func(r chi.Router) {
		r.Get("/", s.handleOutputNode)
		r.Get("/edges/{field}", s.handleOutputEdge)
	})
	router.NotFound(s.handleNotFound)
	s.router = router
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("serving param graph", "addr", addr, "roots", len(s.reader.Graph().Roots))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// observe logs each request and reports it to the server hooks under its
// route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		observability.Server().OnRequest(r.Context(), r.Method, route, status, d)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", status, "duration", d)
	})
}

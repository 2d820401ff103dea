// Package server is the drawkit HTTP preview server.
//
// It serves scenes from a [store.Store], rendered on demand through a
// [pipeline.Runner]:
//
//	GET /healthz                          build info
//	GET /scenes                           stored scene names
//	GET /scenes/{name}.{format}           one frame in any pipeline format
//	GET /scenes/{name}/frames/{frame}.png one animation frame
//
// Render requests accept the query parameters frame, scale, sketch, graph,
// engine and refresh, with the same meaning as the CLI flags. Errors are
// JSON objects carrying the drawkit error code; see [StatusCode] for the
// HTTP status each code maps to.
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

	"github.com/matzehuels/drawkit/pkg/pipeline"
	"github.com/matzehuels/drawkit/pkg/store"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "localhost:8080"

// Server renders stored scenes over HTTP. Each request draws on its own
// canvas, so a Server handles requests concurrently.
type Server struct {
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server over st. A nil logger discards output.
func New(st store.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s := &Server{store: st, runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)

	// Inline middleware runs after routing, so observe sees the pattern.
	r.Group(func(r chi.Router) {
		r.Use(s.observe)
		r.Get("/healthz", s.handleHealth)
		r.Get("/scenes", s.handleList)
		r.Get("/scenes/{file}", s.handleScene)
		r.Get("/scenes/{name}/frames/{file}", s.handleFrame)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, notFound("no route for %s", r.URL.Path))
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("serving scenes", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

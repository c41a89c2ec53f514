// Package server exposes the layout engine over HTTP.
//
// The API is stateless: every request carries the full layout inputs and
// gets a freshly computed (or cached) snapshot back. Orchestration and
// debouncing live in interactive frontends; the server is a pure
// function from query parameters to rendered output.
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
	"github.com/rs/cors"

	"github.com/stratakeys/stratakeys/pkg/cache"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server's logger. Nil discards.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCache sets the artifact cache backend. Nil disables caching.
func WithCache(c cache.Cache) Option {
	return func(s *Server) {
		if c != nil {
			s.cache = c
		}
	}
}

// Server serves layouts over HTTP.
type Server struct {
	logger *log.Logger
	cache  cache.Cache
	keyer  cache.Keyer
	router chi.Router
}

// New creates a Server with its routes mounted.
func New(opts ...Option) *Server {
	s := &Server{
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		cache:  cache.NewNullCache(),
		keyer:  cache.NewScopedKeyer(cache.NewDefaultKeyer(), "v1:"),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}).Handler)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/layout", s.handleLayout)
		r.Get("/resolve", s.handleResolve)
	})
	s.router = r
	return s
}

// Handler returns the server's HTTP handler, for mounting and testing.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until the context is canceled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

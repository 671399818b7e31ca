// Package server provides HTTP server setup, routing, and middleware.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"requestlog/internal/config"
	"requestlog/internal/echo"
	"requestlog/internal/requestlog"
	"requestlog/internal/stream"
	"requestlog/internal/whoami"
)

// StreamInterval is the pause between chunks on /stream.
const StreamInterval = 100 * time.Millisecond

// Server holds the HTTP server and its dependencies.
type Server struct {
	cfg      *config.Config
	logger   zerolog.Logger
	router   *http.ServeMux
	registry *prometheus.Registry
	metrics  *Metrics
}

// New creates a new Server with all routes configured.
func New(cfg *config.Config, logger zerolog.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logger,
		router: http.NewServeMux(),
	}
	if cfg.EnableMetrics {
		s.registry = prometheus.NewRegistry()
		s.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		s.metrics = NewMetrics(s.registry)
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("POST /echo", echo.Handle)
	s.router.HandleFunc("GET /whoami", whoami.Handle)
	s.router.Handle("GET /stream", stream.NewHandler(StreamInterval))

	s.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if s.registry != nil {
		s.router.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	if s.cfg.EnablePprof {
		s.logger.Info().Msg("Pprof enabled")
		s.router.HandleFunc("/debug/pprof/", pprof.Index)
		s.router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		s.router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		s.router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		s.router.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
}

// Handler returns the HTTP handler with all middleware applied. Request
// logging buffers the response, so it goes outermost.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	if s.metrics != nil {
		h = MetricsMiddleware(s.metrics, h)
	}
	if s.cfg.HttpLogging {
		s.logger.Info().Msg("HTTP logging enabled")
		h = requestlog.Use(s.logger)(h)
	}
	return h
}

// ListenAndServe starts the HTTP server and blocks until ctx is done, then
// shuts down gracefully within the configured timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.ListenAddr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return s.logger.WithContext(context.Background())
		},
	}

	s.logger.Info().
		Str("listen_addr", ln.Addr().String()).
		Bool("http_logging", s.cfg.HttpLogging).
		Bool("metrics", s.cfg.EnableMetrics).
		Msg("Starting server")

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Request log demo server
//
// This is the main entry point for a small HTTP service that logs every
// request/response pair through the requestlog middleware.
//
// Usage:
//
//	LISTEN_ADDR=:8080 LOG_FORMAT=console go run ./cmd/api
//
// Environment Variables:
//   - LISTEN_ADDR: Address to listen on (default: ":8080")
//   - HTTP_LOGGING: Log request and response bodies (default: true)
//   - ENABLE_METRICS: Serve /metrics (default: true)
//   - ENABLE_PPROF: Serve /debug/pprof (default: false)
//   - LOG_LEVEL: zerolog level (default: "info")
//   - LOG_FORMAT: "console" or "json" (default: "console")
//   - SHUTDOWN_TIMEOUT: Graceful shutdown bound (default: "10s")
//   - CONFIG_FILE: YAML file to read before the environment (default: configs/config.yaml if present)
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"requestlog/internal/config"
	"requestlog/internal/logging"
	"requestlog/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Config error")
	}

	logger := setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	if err := srv.ListenAndServe(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}

func setupLogging(cfg *config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger, err := logging.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Logging setup error")
	}
	log.Logger = logger
	return logger
}

// Package logging builds the zerolog logger shared by the service.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"requestlog/internal/config"
)

// New returns a logger writing to stdout in the format and at the level cfg asks for.
func New(cfg *config.Config) (zerolog.Logger, error) {
	return newLogger(os.Stdout, cfg)
}

func newLogger(out io.Writer, cfg *config.Config) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parsing log level: %w", err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	w := out
	if cfg.LogFormat == "console" {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// Package logging builds the zerolog loggers used by the CLI and the API server.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options selects where and how log records are written.
type Options struct {
	Level string // zerolog level name; empty or unknown means info
	JSON  bool   // emit JSON records instead of console output
	Out   io.Writer
}

// Init configures zerolog's process-wide field formats. Call it once at
// startup, before any logger is built.
func Init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.DurationFieldUnit = time.Millisecond
}

// New returns a logger tagged with app "logsift". Child loggers add their
// own component field through Component. An unrecognised level falls back to
// info and is reported through the returned logger.
func New(opts Options) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	level, levelErr := parseLevel(opts.Level)

	var w io.Writer = out
	if !opts.JSON {
		w = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    noColor(),
		}
	}

	logger := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("app", "logsift").
		Logger()

	if levelErr != nil {
		logger.Warn().
			Str("provided_level", opts.Level).
			Str("default_level", level.String()).
			Msg("invalid log level, using default")
	}
	return logger
}

// Component derives a child logger for one part of the program.
func Component(parent zerolog.Logger, name string) zerolog.Logger {
	return parent.With().Str("component", name).Logger()
}

func parseLevel(name string) (zerolog.Level, error) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(trimmed)
	if err != nil {
		return zerolog.InfoLevel, err
	}
	if level == zerolog.NoLevel {
		return zerolog.InfoLevel, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

func noColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	v := os.Getenv("LOGSIFT_NOCOLOR")
	return v == "1" || v == "true"
}

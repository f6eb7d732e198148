// Package logger holds the package-level zerolog logger shared by the
// harness. Snapshot I/O is best-effort by design, so swallowed failures
// are surfaced here instead of as errors.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

func init() {
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Str("component", "flowshot").Logger()
}

// Logger returns the package-level logger.
func Logger() *zerolog.Logger {
	return &log
}

// Set replaces the package-level logger (e.g. to raise verbosity or
// redirect output in tests).
func Set(l zerolog.Logger) {
	log = l
}

// SetLevel adjusts the level of the package-level logger in place.
func SetLevel(level zerolog.Level) {
	log = log.Level(level)
}

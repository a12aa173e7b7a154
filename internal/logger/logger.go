// Package logger provides a configured zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

// Options tune the logger built by NewWithOptions.
type Options struct {
	// Level is a zerolog level name; unknown or empty values fall back to info.
	Level string
	// Format is "json" (default) or "console" for human-readable local output.
	Format string
	// Writer defaults to os.Stdout.
	Writer io.Writer
}

// New returns a new zerolog.Logger configured for the application.
// Call sites should use .Stack() on error events to include stacks.
func New(serviceName string) zerolog.Logger {
	return NewWithOptions(serviceName, Options{})
}

// NewWithOptions is New with an explicit level, format and writer.
func NewWithOptions(serviceName string, opts Options) zerolog.Logger {
	// Configure zerolog to work with github.com/pkg/errors:
	// - Automatically marshal pkg/errors stack traces when present
	// - Ensure a stack is present even for std errors when .Stack() is used
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		type stackTracer interface{ StackTrace() pkgerrors.StackTrace }
		if _, ok := err.(stackTracer); !ok {
			err = pkgerrors.WithStack(err)
		}
		return zpkgerrors.MarshalStack(err)
	}

	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	if strings.EqualFold(opts.Format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	return zerolog.New(w).Level(level).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}

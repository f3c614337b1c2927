// Package logging provides the application logger, backed by charmbracelet/log.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the logging interface used throughout the application.
type Logger interface {
	Debug(interface{}, ...interface{})
	Info(interface{}, ...interface{})
	Warn(interface{}, ...interface{})
	Error(interface{}, ...interface{})
	Fatal(interface{}, ...interface{})
}

// Options configures the logger.
type Options struct {
	Writer io.Writer
	Level  string
}

// NewLogger creates a Logger writing to opts.Writer (stderr by default) at
// opts.Level. Unknown levels fall back to info.
func NewLogger(opts Options) Logger {
	var w io.Writer = os.Stderr
	if opts.Writer != nil {
		w = opts.Writer
	}

	lvl, err := log.ParseLevel(opts.Level)
	if err != nil {
		lvl = log.InfoLevel
	}
	if DebugEnabled() {
		lvl = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
	})
}

// NewNopLogger creates a Logger that discards everything. Useful in tests.
func NewNopLogger() Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel + 1})
}

// DebugEnabled returns true if debug mode is forced via the RK_DEBUG
// environment variable.
func DebugEnabled() bool {
	return os.Getenv("RK_DEBUG") != ""
}

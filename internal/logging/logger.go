// Package logging provides a configured slog logger for namekit.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Options configures the default slog logger used by namekit.
type Options struct {
	// Verbose toggles debug level logging when true.
	Verbose bool
	// JSON switches the handler from key=value text to JSON records.
	JSON bool
	// Writer directs log output; defaults to os.Stderr when nil.
	Writer io.Writer
}

// New constructs a slog.Logger with namekit defaults.
func New(opts Options) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(writer, handlerOpts)
	} else {
		handler = slog.NewTextHandler(writer, handlerOpts)
	}
	return slog.New(handler)
}

// Nop returns a logger that discards every record. Useful for tests.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

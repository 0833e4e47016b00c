// Package log is the process-wide structured logger for atscv.
package log

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

var (
	current atomic.Pointer[slog.Logger]
	level   = new(slog.LevelVar)
	// jsonOutput switches the handler to JSON, e.g. when output is piped into a collector
	jsonOutput atomic.Bool
)

func init() {
	level.Set(slog.LevelWarn)
	SetOutput(os.Stderr)
}

// SetVerbose enables debug logging
func SetVerbose(verbose bool) {
	if verbose {
		level.Set(slog.LevelDebug)
		return
	}
	level.Set(slog.LevelWarn)
}

// SetQuiet restricts output to errors
func SetQuiet(quiet bool) {
	if quiet {
		level.Set(slog.LevelError)
	}
}

// SetJSON selects the JSON handler for subsequent SetOutput calls and
// rebuilds the current logger on stderr.
func SetJSON(enabled bool) {
	jsonOutput.Store(enabled)
	SetOutput(os.Stderr)
}

// SetOutput changes the log destination
func SetOutput(w io.Writer) {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if jsonOutput.Load() {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	current.Store(slog.New(h))
}

func Debug(msg string, args ...any) {
	current.Load().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	current.Load().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	current.Load().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	current.Load().Error(msg, args...)
}

// With returns a child logger carrying the given attributes, e.g.
// log.With("section", name).Debug("formatted").
func With(args ...any) *slog.Logger {
	return current.Load().With(args...)
}

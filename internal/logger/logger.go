// Package logger is a thin wrapper over log/slog that mirrors the
// key-value Info/Warn/Error/Crit call shape used throughout go-ethereum
// derived nodes (see consensus/equa's own log.Info/log.Warn calls). No
// external logging library appears in the dependency stack, so this
// package, like its model, is built directly on the standard library.
package logger

import (
	"log/slog"
	"os"
)

var base = slog.New(slog.NewTextHandler(os.Stderr, nil))

// Info logs at informational level with loosely-typed key-value pairs.
func Info(msg string, kv ...any) {
	base.Info(msg, kv...)
}

// Warn logs a recoverable anomaly: a failed snapshot save, a skipped peer.
func Warn(msg string, kv ...any) {
	base.Warn(msg, kv...)
}

// Error logs a failed operation that the caller is already handling.
func Error(msg string, kv ...any) {
	base.Error(msg, kv...)
}

// Crit logs an unrecoverable condition and terminates the process, matching
// go-ethereum's log.Crit semantics.
func Crit(msg string, kv ...any) {
	base.Error(msg, kv...)
	os.Exit(1)
}

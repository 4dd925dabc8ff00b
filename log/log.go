// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is a thin front over go-ethereum's structured logger.
// Packages derive their loggers via WithContext so every record carries
// a stable "pkg" field.
package log

import (
	"io"
	"log/slog"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// Logger writes leveled records and carries key/value context.
type Logger = ethlog.Logger

// Legacy log15 verbosity levels, accepted by verbosity flags.
const (
	LegacyLevelCrit = iota
	LegacyLevelError
	LegacyLevelWarn
	LegacyLevelInfo
	LegacyLevelDebug
	LegacyLevelTrace
)

// WithContext derives a logger from the root logger with persistent context.
func WithContext(ctx ...any) Logger {
	return ethlog.Root().New(ctx...)
}

// Root returns the process-wide root logger.
func Root() Logger {
	return ethlog.Root()
}

// SetDefault sets the root logger.
func SetDefault(l Logger) {
	ethlog.SetDefault(l)
}

// NewLogger returns a logger writing through the given handler.
func NewLogger(h slog.Handler) Logger {
	return ethlog.NewLogger(h)
}

// NewTerminalHandlerWithLevel returns a handler formatting records for a
// terminal, dropping records above the given verbosity level.
func NewTerminalHandlerWithLevel(wr io.Writer, lvl slog.Level, useColor bool) slog.Handler {
	return ethlog.NewTerminalHandlerWithLevel(wr, lvl, useColor)
}

// JSONHandlerWithLevel returns a handler printing records in JSON format,
// dropping records above the given verbosity level.
func JSONHandlerWithLevel(wr io.Writer, lvl slog.Level) slog.Handler {
	return ethlog.JSONHandlerWithLevel(wr, lvl)
}

// DiscardHandler returns a no-op handler.
func DiscardHandler() slog.Handler {
	return ethlog.DiscardHandler()
}

// FromLegacyLevel converts log15 verbosity (0..5) to the corresponding slog level.
func FromLegacyLevel(lvl int) slog.Level {
	return ethlog.FromLegacyLevel(lvl)
}

// Trace logs at trace level on the root logger.
func Trace(msg string, ctx ...any) {
	ethlog.Trace(msg, ctx...)
}

// Debug logs at debug level on the root logger.
func Debug(msg string, ctx ...any) {
	ethlog.Debug(msg, ctx...)
}

// Info logs at info level on the root logger.
func Info(msg string, ctx ...any) {
	ethlog.Info(msg, ctx...)
}

// Warn logs at warn level on the root logger.
func Warn(msg string, ctx ...any) {
	ethlog.Warn(msg, ctx...)
}

// Error logs at error level on the root logger.
func Error(msg string, ctx ...any) {
	ethlog.Error(msg, ctx...)
}

// Crit logs at crit level on the root logger and exits the process.
func Crit(msg string, ctx ...any) {
	ethlog.Crit(msg, ctx...)
}

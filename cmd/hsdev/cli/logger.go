// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// EnvDebug names the environment variable that lowers the log level to
// Debug when set to "1". At Debug every child invocation is logged.
const EnvDebug = "HSDEV_DEBUG"

// NewCommandLogger creates a structured logger for CLI command operations.
// When stderr is a terminal, uses slog.TextHandler for human-readable output.
// When stderr is piped or redirected (CI, scripts, tests), uses
// slog.JSONHandler for machine-parseable output.
//
// Callers scope the logger with command-specific context via With():
//
//	logger := cli.NewCommandLogger().With("command", "clean")
func NewCommandLogger() *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: logLevel(os.Getenv(EnvDebug))}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}

func logLevel(debug string) slog.Level {
	if debug == "1" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

type loggerKey struct{}

// WithLogger returns a context carrying logger. [Command.Execute] hands
// it (scoped to the command) to Run.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFrom returns the logger stored by [WithLogger], or a new
// [NewCommandLogger] when there is none.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return NewCommandLogger()
}

package csr

import (
	"context"
	"log/slog"
)

// LevelTrace sits right above Info. A handler at Info or below logs every
// register access; process handlers that should stay quiet use Warn.
const LevelTrace slog.Level = slog.LevelInfo + 1

// Trace logs a bus-level event at LevelTrace on the default logger.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

package logging

import (
	"log/slog"
	"os"
)

// New creates a configured library logger.
// It writes to Stderr so test and demo output on Stdout stays clean, and
// standardizes common keys (e.g., "error" -> "err").
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a no-op logger. The engine defaults to this so that
// high-iteration property search pays nothing for tracing unless asked.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

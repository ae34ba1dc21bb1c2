package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Init configures the global slog logger.
// In production (ENVIRONMENT=production) it uses JSON output for log aggregation.
// Otherwise it uses the human-readable text handler.
func Init() {
	env := strings.ToLower(os.Getenv("ENVIRONMENT"))

	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	slog.SetDefault(slog.New(handler))
}

// WithChat returns a logger with chat turn context fields attached.
// Use this for all logging within a single assistant turn.
func WithChat(intent string, elapsedMs int64) *slog.Logger {
	return slog.With(
		"intent", intent,
		"elapsed_ms", elapsedMs,
	)
}

// WithStream returns a logger scoped to an SSE stream for one order.
func WithStream(orderID string) *slog.Logger {
	return slog.With("order_id", orderID, "transport", "sse")
}

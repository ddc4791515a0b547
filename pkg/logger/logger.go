package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New constructs the JSON slog logger shared by every component.
func New() *slog.Logger {
	return build(slog.LevelInfo)
}

// NewQuiet is New for interactive tools: only warnings and errors unless LOG_LEVEL says
// otherwise.
func NewQuiet() *slog.Logger {
	return build(slog.LevelWarn)
}

func build(fallback slog.Level) *slog.Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"), fallback)
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("service", "healthdash")
}

func parseLevel(level string, fallback slog.Level) slog.Leveler {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}

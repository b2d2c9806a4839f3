package logger

import "context"

type Level string

const (
	Info  Level = "info"
	Error Level = "error"
)

type LoggerType string

const (
	Slog LoggerType = "slog"
)

var (
	LoggerTypes = map[string]LoggerType{
		"slog": Slog,
	}
)

// Logger receives exactly one call per delivery attempt. details may be nil.
type Logger interface {
	Log(ctx context.Context, level Level, msg string, details map[string]any)
}

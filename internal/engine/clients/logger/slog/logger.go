package slog

import (
	"context"
	"log/slog"
	"sort"

	"github.com/w-h-a/notify/internal/engine/clients/logger"
)

type slogLogger struct {
	options logger.Options
}

func (l *slogLogger) Log(ctx context.Context, level logger.Level, msg string, details map[string]any) {
	base := l.options.Logger
	if base == nil {
		// resolved per call so telemetry can swap the default after construction
		base = slog.Default()
	}

	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, 2*len(keys)+2)
	if len(l.options.Name) > 0 {
		args = append(args, "logger", l.options.Name)
	}
	for _, k := range keys {
		args = append(args, k, details[k])
	}

	switch level {
	case logger.Error:
		base.ErrorContext(ctx, msg, args...)
	default:
		base.InfoContext(ctx, msg, args...)
	}
}

func NewLogger(opts ...logger.Option) logger.Logger {
	options := logger.NewOptions(opts...)

	l := &slogLogger{
		options: options,
	}

	return l
}

package postgres

import (
	"context"
	"log/slog"

	"github.com/cwrk-planet/bizos/pkg/logger"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/tracelog"
)

// slogAdapter пишет трейсы pgx в логгер запроса вместе с req_id.
type slogAdapter struct{}

func NewSlogAdapter() tracelog.Logger {
	return slogAdapter{}
}

func (slogAdapter) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	attrs := make([]slog.Attr, 0, len(data)+1)
	for k, v := range data {
		attrs = append(attrs, slog.Any(k, v))
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		attrs = append(attrs, slog.String("req_id", reqID))
	}

	logger.FromContext(ctx).LogAttrs(ctx, toSlogLevel(level), "pgx: "+msg, attrs...)
}

func toSlogLevel(level tracelog.LogLevel) slog.Level {
	switch level {
	case tracelog.LogLevelTrace, tracelog.LogLevelDebug:
		return slog.LevelDebug
	case tracelog.LogLevelInfo:
		return slog.LevelInfo
	case tracelog.LogLevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

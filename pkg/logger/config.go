package logger

import (
	"io"
	"log/slog"
	"strings"
)

type Backend string

const (
	BackendStd Backend = "std" // text в dev
	BackendZap Backend = "zap" // json через slog-zap в stage/prod
)

type Config struct {
	Service    string
	Version    string
	InstanceID string

	Level   slog.Level
	Env     Env
	Backend Backend // пусто: std для dev, zap для остальных
	Debug   bool

	SampleInitial    int
	SampleThereafter int

	AddSource bool

	// Output по умолчанию os.Stdout
	Output io.Writer
}

// ParseLevel понимает debug|info|warn|error, всё прочее считается info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) level() slog.Level {
	if c.Debug && c.Level == 0 {
		return slog.LevelDebug
	}
	return c.Level
}

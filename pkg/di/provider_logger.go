package di

import (
	"io"
	"log/slog"
	"os"

	"github.com/goliatone/gitscm/pkg/config"
)

// logOutput is where logs go. Command output owns stdout, so logs use stderr.
var logOutput io.Writer = os.Stderr

func provideLogger() Logger {
	return newSlogAdapter(slog.NewTextHandler(logOutput, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// provideLoggerWithConfig creates a logger honouring level, format, verbose and quiet.
func provideLoggerWithConfig(cfg *config.Config) Logger {
	if cfg == nil {
		return provideLogger()
	}

	opts := &slog.HandlerOptions{Level: logLevel(cfg.Logging)}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(logOutput, opts)
	} else {
		handler = slog.NewTextHandler(logOutput, opts)
	}

	return newSlogAdapter(handler)
}

func logLevel(logging config.LoggingConfig) slog.Level {
	switch {
	case logging.Quiet:
		return slog.LevelWarn
	case logging.Verbose:
		return slog.LevelDebug
	}

	switch logging.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// slogAdapter adapts slog.Logger to implement our Logger interface.
type slogAdapter struct {
	logger *slog.Logger
}

func newSlogAdapter(handler slog.Handler) *slogAdapter {
	return &slogAdapter{logger: slog.New(handler)}
}

func (s *slogAdapter) Debug(msg string, args ...any) { s.logger.Debug(msg, args...) }
func (s *slogAdapter) Info(msg string, args ...any)  { s.logger.Info(msg, args...) }
func (s *slogAdapter) Warn(msg string, args ...any)  { s.logger.Warn(msg, args...) }
func (s *slogAdapter) Error(msg string, args ...any) { s.logger.Error(msg, args...) }

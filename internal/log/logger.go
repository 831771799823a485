// Package log provides structured logging with correlation IDs.
package log

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/axd-platform/catalog/internal/config"
	"github.com/rs/zerolog"
)

type contextKey string

// Context keys for logging.
const (
	correlationIDKey contextKey = "correlation_id"
	principalIDKey   contextKey = "principal_id"
)

// NewLogger creates a logger based on configuration, writing to stdout.
func NewLogger(cfg config.AppConfig) zerolog.Logger {
	return NewLoggerWithWriter(os.Stdout, cfg.LogFormat(), cfg.LogLevel())
}

// NewLoggerWithWriter creates a logger that writes to the specified writer.
func NewLoggerWithWriter(w io.Writer, format config.LogFormat, level string) zerolog.Logger {
	out := w
	if format != config.LogFormatJSON {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: !isTerminal(w)}
	}
	return zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// ParseLevel maps a configured level name onto a zerolog level. Unknown names map to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// WithCorrelationID adds a correlation ID to the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationID extracts the correlation ID from context.
func CorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	return ""
}

// Attach stores logger in ctx, enriched with any correlation ID already in ctx.
// Loggers are retrieved downstream with zerolog.Ctx.
func Attach(ctx context.Context, logger zerolog.Logger) context.Context {
	if id := CorrelationID(ctx); id != "" {
		logger = logger.With().Str(string(correlationIDKey), id).Logger()
	}
	return logger.WithContext(ctx)
}

// AddPrincipal tags the logger already attached to ctx with the caller's id.
func AddPrincipal(ctx context.Context, id string) {
	if id == "" {
		return
	}
	zerolog.Ctx(ctx).UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str(string(principalIDKey), id)
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

package logging

import (
	"context"
	"log/slog"
	"time"
)

type Attr = slog.Attr

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// Args converts typed attributes into the variadic form slog methods accept.
func Args(attrs ...Attr) []any {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return args
}

func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger tags logger with a component name. A nil logger yields
// a no-op logger.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// required is a field every warning or error line must carry, with the value
// used when the caller omits it.
type required struct {
	key      string
	fallback string
}

// WarnWithContext logs a degraded-but-continuing condition. event_type,
// error_hint and impact are filled in when the caller leaves them out.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	logRequired(logger, slog.LevelWarn, msg, attrs,
		required{FieldEventType, eventType},
		required{FieldErrorHint, "check logs for details"},
		required{FieldImpact, "results may be incomplete"},
	)
}

// ErrorWithContext logs a failure with event_type and error_hint filled in.
func ErrorWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	logRequired(logger, slog.LevelError, msg, attrs,
		required{FieldEventType, eventType},
		required{FieldErrorHint, "check logs for details"},
	)
}

func logRequired(logger *slog.Logger, level slog.Level, msg string, attrs []Attr, fields ...required) {
	if logger == nil {
		return
	}
	present := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		present[a.Key] = true
	}
	for _, f := range fields {
		if !present[f.key] {
			attrs = append(attrs, String(f.key, f.fallback))
		}
	}
	logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// NoopHandler discards all log output.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }

func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler { return NoopHandler{} }

func (NoopHandler) WithGroup(string) slog.Handler { return NoopHandler{} }

// Package logger builds the process slog.Logger and adds a TRACE level below
// DEBUG for diagnostics whose attributes are expensive to assemble.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LevelTrace sits below slog.LevelDebug.
const LevelTrace = slog.Level(-8)

// New returns a logger writing text or JSON records to w.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl <= LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// ParseLevel accepts trace, debug, info, warn and error (case-insensitive).
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Sub returns a logger tagged with the component name.
func Sub(logger *slog.Logger, component string) *slog.Logger {
	return logger.With("component", component)
}

// Trace logs msg at TRACE. detail runs only when TRACE is enabled; a panic
// raised while building it is swallowed and the record is dropped.
func Trace(ctx context.Context, logger *slog.Logger, msg string, detail func() []any) {
	if logger == nil || !logger.Enabled(ctx, LevelTrace) {
		return
	}
	defer func() { _ = recover() }()
	var args []any
	if detail != nil {
		args = detail()
	}
	logger.Log(ctx, LevelTrace, msg, args...)
}

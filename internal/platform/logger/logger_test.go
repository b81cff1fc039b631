package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"trace":   LevelTrace,
		"DEBUG":   slog.LevelDebug,
		"":        slog.LevelInfo,
		" info ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNew_RendersTraceLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelTrace, "json")
	log.Log(context.Background(), LevelTrace, "detail")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "TRACE", rec["level"])
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelInfo, "text").Info("hello", "k", "v")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "k=v")
}

func TestSub(t *testing.T) {
	var buf bytes.Buffer
	Sub(New(&buf, slog.LevelInfo, "json"), "ClipAndTrimView").Info("x")
	assert.Contains(t, buf.String(), `"component":"ClipAndTrimView"`)
}

func TestTrace(t *testing.T) {
	ctx := context.Background()

	t.Run("detail is not built when trace is disabled", func(t *testing.T) {
		var buf bytes.Buffer
		called := false
		Trace(ctx, New(&buf, slog.LevelInfo, "json"), "skipped", func() []any {
			called = true
			return nil
		})
		assert.False(t, called)
		assert.Empty(t, buf.String())
	})

	t.Run("detail is logged when trace is enabled", func(t *testing.T) {
		var buf bytes.Buffer
		Trace(ctx, New(&buf, LevelTrace, "json"), "conditions", func() []any {
			return []any{"entryReady", true}
		})
		assert.Contains(t, buf.String(), `"entryReady":true`)
	})

	t.Run("panicking detail is swallowed", func(t *testing.T) {
		var buf bytes.Buffer
		assert.NotPanics(t, func() {
			Trace(ctx, New(&buf, LevelTrace, "json"), "boom", func() []any { panic("bad detail") })
		})
		assert.Empty(t, buf.String())
	})

	t.Run("nil logger", func(t *testing.T) {
		assert.NotPanics(t, func() { Trace(ctx, nil, "x", nil) })
	})
}

package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	t.Run("text format by default", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(&buf, Config{})

		logger.Info("hello", "key", "value")

		out := buf.String()
		assert.Contains(t, out, "hello")
		assert.Contains(t, out, "key=value")
	})

	t.Run("json format when enabled", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(&buf, Config{JSON: true})

		logger.Info("hello")

		assert.Contains(t, buf.String(), `"msg":"hello"`)
	})

	t.Run("respects level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(&buf, Config{Level: slog.LevelWarn})

		logger.Info("dropped")
		logger.Warn("kept")

		out := buf.String()
		assert.NotContains(t, out, "dropped")
		assert.Contains(t, out, "kept")
	})
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	require.NotNil(t, logger)
	// Must not panic.
	logger.Info("discarded")
}

func TestNewWithFile(t *testing.T) {
	path := t.TempDir() + "/service.log"
	logger := New(Config{File: path})
	require.NotNil(t, logger)
	logger.Info("to file and stderr")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

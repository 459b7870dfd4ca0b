package app

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level    string
		format   string
		lowest   slog.Level
		belowLow slog.Level
	}{
		{level: "debug", format: "text", lowest: slog.LevelDebug, belowLow: slog.LevelDebug - 4},
		{level: "warn", format: "json", lowest: slog.LevelWarn, belowLow: slog.LevelInfo},
		{level: "nonsense", format: "text", lowest: slog.LevelInfo, belowLow: slog.LevelDebug},
	}
	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			logger := newLogger(tc.level, tc.format, &bytes.Buffer{})
			assert.True(t, logger.Enabled(context.Background(), tc.lowest))
			assert.False(t, logger.Enabled(context.Background(), tc.belowLow))
		})
	}

	var buf bytes.Buffer
	newLogger("info", "json", &buf).Info("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

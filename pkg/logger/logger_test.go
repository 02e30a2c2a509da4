package logger_test

import (
	"log/slog"
	"testing"

	"github.com/gnames/gnxref/pkg/config"
	"github.com/gnames/gnxref/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"warning alias", "warning", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"mixed case", "DEBUG", slog.LevelDebug},
		{"empty defaults to info", "", slog.LevelInfo},
		{"invalid defaults to info", "shouting", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.ParseLevel(tt.input))
		})
	}
}

func TestNew(t *testing.T) {
	assert := assert.New(t)
	for _, format := range []string{"text", "json", "bogus"} {
		l := logger.New(&config.LogConfig{Level: "debug", Format: format})
		assert.NotNil(l)
		assert.True(l.Enabled(t.Context(), slog.LevelDebug))
	}
}

package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
)

func TestInitLogger(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"unknown": slog.LevelInfo,
	}

	for logLevel, want := range tests {
		t.Run(logLevel, func(t *testing.T) {
			// When: a logger is built for the configured level
			logger := initLogger(&config.Config{LogLevel: logLevel})

			// Then: records below that level are dropped
			assert.True(t, logger.Enabled(context.Background(), want))
			assert.False(t, logger.Enabled(context.Background(), want-1))
		})
	}
}

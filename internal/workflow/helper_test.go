package workflow

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/gabriel-bornea/monadyssey-showcase/internal/policy"
	"github.com/gabriel-bornea/monadyssey-showcase/internal/schedule"
	"github.com/stretchr/testify/assert"
)

func newQuietSchedule(settings policy.Settings) (*schedule.Schedule, error) {
	return schedule.NewFromSettings(settings, schedule.WithLogger(slog.New(slog.DiscardHandler)))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for input, want := range tests {
		assert.Equal(t, want, ParseLevel(input), "level %q", input)
	}
}

func TestNewLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "warn", true)

	logger.Info("hidden")
	logger.Warn("shown", "attempt", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "service=weather")
	assert.Contains(t, out, "attempt=2")
}

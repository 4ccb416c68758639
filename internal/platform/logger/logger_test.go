package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"Warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	t.Parallel()

	buf := &TestLogBuffer{}
	l := New(buf, "warn")
	l.Info("hidden")
	l.Error("shown", "component", "test")

	entries := buf.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["msg"])
	assert.Equal(t, "ERROR", entries[0]["level"])
	assert.Equal(t, "test", entries[0]["component"])
}

func TestNewWarnsOnUnknownLevel(t *testing.T) {
	t.Parallel()

	buf := &TestLogBuffer{}
	New(buf, "chatty")

	entries := buf.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "chatty", entries[0]["configured_level"])
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	l, _ := NewTestLogger()
	fallback := slog.New(slog.DiscardHandler)

	ctx := WithContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
	assert.Same(t, l, FromContextOrDefault(ctx, fallback))
	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	assert.NotNil(t, FromContext(context.Background()))
}

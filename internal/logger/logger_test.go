package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":  zapcore.DebugLevel,
		" INFO ": zapcore.InfoLevel,
		"":       zapcore.InfoLevel,
		"warn":   zapcore.WarnLevel,
		"error":  zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, ok := ParseLogLevel(in)
		require.True(t, ok, in)
		require.Equal(t, want, got, in)
	}

	_, ok := ParseLogLevel("verbose")
	require.False(t, ok)
}

func TestFromContextFallsBackToGlobal(t *testing.T) {
	require.Same(t, Logger(), FromContext(context.Background()))
}

func TestContextLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(core).Sugar())
	ctx = With(ctx, "component", "test")

	InfoKV(ctx, "armed", "alarm", "08:00")
	WarnKV(ctx, "corrupt alarm")

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "armed", entries[0].Message)
	require.Equal(t, map[string]any{"component": "test", "alarm": "08:00"}, entries[0].ContextMap())
	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
	require.Equal(t, "corrupt alarm", entries[1].Message)
}

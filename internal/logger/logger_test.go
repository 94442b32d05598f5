package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitSetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	flush := Init(true, "devlens", "")
	require.NotNil(t, flush)
	flush()

	require.Same(t, Log, slog.Default())
	require.True(t, Log.Enabled(t.Context(), slog.LevelDebug))
}

func TestInitProductionLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	Init(false, "devlens", "")
	require.False(t, Log.Enabled(t.Context(), slog.LevelDebug))
	require.True(t, Log.Enabled(t.Context(), slog.LevelInfo))
}

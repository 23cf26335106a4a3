package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDisabledDiscards(t *testing.T) {
	require.NoError(t, Init(Options{Enabled: false}))
	Info("nothing to see")
	assert.False(t, L.Enabled(t.Context(), slog.LevelError))
}

func TestInitWithOutput(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Init(Options{Enabled: true, Level: slog.LevelDebug, Output: &out}))
	t.Cleanup(Close)

	Debug("registry dispatch", "module", "COFF")
	assert.Contains(t, out.String(), `"msg":"registry dispatch"`)
	assert.Contains(t, out.String(), `"module":"COFF"`)
}

func TestInitWritesLogFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(Options{Enabled: true, LogDir: dir}))
	Warn("truncated symbol table", "offset", 1234)
	Close()

	matches, err := filepath.Glob(filepath.Join(dir, logPrefix+"*"+logSuffix))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "truncated symbol table")
}

func TestCleanOldLogs(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	old := filepath.Join(dir, "pgctl-2024-01-01.log")
	recent := filepath.Join(dir, "pgctl-2024-02-20.log")
	other := filepath.Join(dir, "notes.txt")
	for _, p := range []string{old, recent, other} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}

	cleanOldLogs(dir, now)

	assert.NoFileExists(t, old)
	assert.FileExists(t, recent)
	assert.FileExists(t, other)
}

func TestCloseDisablesLogger(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Init(Options{Enabled: true, Output: &out, Level: slog.LevelDebug}))
	require.True(t, L.Enabled(t.Context(), slog.LevelInfo))

	Close()
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		assert.False(t, L.Enabled(t.Context(), level), level.String())
	}
	Error("after close")
	assert.NotContains(t, out.String(), "after close")
}

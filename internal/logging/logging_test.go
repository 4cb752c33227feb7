package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: FormatJSON, Output: &buf})

	logger.Info("installed", "version", "1.0", "token", "s3cr3t-value")

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed), "output: %s", buf.String())
	assert.Equal(t, "installed", parsed["msg"])
	assert.Equal(t, "INFO", parsed["level"])
	assert.Equal(t, "1.0", parsed["version"])
	assert.Equal(t, "****alue", parsed["token"])
}

func TestNew_TextFormat(t *testing.T) {
	tests := []struct {
		name   string
		format Format
	}{
		{"text", FormatText},
		{"unknown falls back to text", Format("xml")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: slog.LevelInfo, Format: tt.format, Output: &buf})

			logger.Info("installed", "version", "1.0")

			var parsed map[string]any
			assert.Error(t, json.Unmarshal(buf.Bytes(), &parsed))
			assert.Contains(t, buf.String(), "version=1.0")
		})
	}
}

func TestNew_File(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "quail.log")
	var console bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Output: &console, File: logPath})

	logger.Info("uninstalled", "name", "Allum1")

	assert.Contains(t, console.String(), "uninstalled")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, "Allum1", parsed["name"])
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name        string
		configLevel slog.Level
		logLevel    slog.Level
		want        bool
	}{
		{"info at info", slog.LevelInfo, slog.LevelInfo, true},
		{"debug at info", slog.LevelInfo, slog.LevelDebug, false},
		{"error at warn", slog.LevelWarn, slog.LevelError, true},
		{"info at warn", slog.LevelWarn, slog.LevelInfo, false},
		{"trace at debug", slog.LevelDebug, LevelTrace, false},
		{"trace at trace", LevelTrace, LevelTrace, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: tt.configLevel, Output: &buf})

			logger.Log(t.Context(), tt.logLevel, "message")

			assert.Equal(t, tt.want, buf.Len() > 0, "output: %q", buf.String())
		})
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		want      slog.Level
	}{
		{-1, slog.LevelWarn},
		{0, slog.LevelWarn},
		{1, slog.LevelInfo},
		{2, slog.LevelDebug},
		{3, LevelTrace},
		{4, LevelTrace},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFromVerbosity(tt.verbosity), "verbosity %d", tt.verbosity)
	}
	assert.Less(t, LevelTrace, slog.LevelDebug)
}

func TestContext(t *testing.T) {
	logger := NewDiscard()
	ctx := NewContext(t.Context(), logger)

	assert.Same(t, logger, FromContext(ctx))
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestForTest(t *testing.T) {
	logger := ForTest(t)
	require.NotNil(t, logger)
	assert.True(t, logger.Enabled(t.Context(), LevelTrace))
}

func TestTestWriter_TrimsNewline(t *testing.T) {
	tw := &testWriter{t: t}

	n, err := tw.Write([]byte("line\n"))
	require.NoError(t, err)
	assert.Equal(t, len("line\n"), n)

	n, err = tw.Write(nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

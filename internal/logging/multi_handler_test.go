package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/quail/internal/errors"
)

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("disk full") }

func TestMultiHandler(t *testing.T) {
	var warn, debug bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
		nil,
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h).With("name", "app").WithGroup("phase")

	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, h.Enabled(context.Background(), LevelTrace))

	logger.Debug("copying", "file", "conf/test.txt")
	logger.Warn("update check failed")

	assert.NotContains(t, warn.String(), "copying")
	assert.Contains(t, warn.String(), "update check failed")
	assert.Contains(t, debug.String(), "name=app")
	assert.Contains(t, debug.String(), "phase.file=conf/test.txt")
}

func TestMultiHandler_KeepsWritingAfterFailure(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(
		failingHandler{slog.NewTextHandler(&bytes.Buffer{}, nil)},
		slog.NewTextHandler(&buf, nil),
	)

	r := slog.NewRecord(time.Time{}, slog.LevelInfo, "installed", 0)
	err := h.Handle(context.Background(), r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, buf.String(), "installed")
}

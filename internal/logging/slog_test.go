package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 4)

	assert.Contains(t, lines[0], "level=DEBUG")
	assert.Contains(t, lines[0], "msg=dbg")
	assert.Contains(t, lines[0], "a=1")
	assert.Contains(t, lines[1], "level=INFO")
	assert.Contains(t, lines[2], "level=WARN")
	assert.Contains(t, lines[3], "level=ERROR")
	assert.Contains(t, lines[3], "d=4")
}

func TestSlogLogger_With(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	child := log.With("component", "gateway")
	child.Info(ctx, "started")

	assert.Contains(t, buf.String(), "component=gateway")
	assert.Contains(t, buf.String(), "msg=started")
}

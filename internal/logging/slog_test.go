package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")
	ctx := context.Background()

	log.Debug(ctx, "dbg")
	log.Info(ctx, "inf")
	log.Warn(ctx, "wrn", "phase", "two_factor_pending")
	log.Error(ctx, "err", "status", 503)

	out := buf.String()
	assert.NotContains(t, out, "msg=dbg")
	assert.NotContains(t, out, "msg=inf")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "phase=two_factor_pending")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "status=503")
}

func TestWith_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug").With("component", "session")

	log.Debug(context.Background(), "cleared", "user_id", 7)

	out := buf.String()
	for _, want := range []string{"level=DEBUG", "msg=cleared", "component=session", "user_id=7"} {
		assert.Contains(t, out, want)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNop_DoesNotPanic(t *testing.T) {
	log := Nop()
	ctx := context.TODO()
	assert.NotPanics(t, func() {
		log.Info(ctx, "x")
		log.With("a", 1).Error(ctx, "y")
	})
}

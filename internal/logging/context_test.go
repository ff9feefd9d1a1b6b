package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelInfo,
		Format: FormatText,
		Output: &buf,
	})

	ctx := NewContext(context.Background(), logger)
	got := FromContext(ctx)

	got.Info("via context")
	if !strings.Contains(buf.String(), "via context") {
		t.Errorf("expected message from context logger, got: %q", buf.String())
	}
}

func TestFromContext_MissingLoggerFallsBack(t *testing.T) {
	got := FromContext(context.Background())
	if got == nil {
		t.Fatal("expected fallback logger, got nil")
	}
	if got != slog.Default() {
		t.Error("expected slog.Default() when context has no logger")
	}
}

package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		if _, err := New(level, false); err != nil {
			t.Errorf("New(%q, false) error: %v", level, err)
		}
		if _, err := New(level, true); err != nil {
			t.Errorf("New(%q, true) error: %v", level, err)
		}
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New("loud", false); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestFromContext(t *testing.T) {
	ctx := context.Background()
	if l := FromContext(ctx); l == nil {
		t.Fatal("FromContext without logger returned nil, want nop logger")
	}

	zl := zap.NewNop()
	ctx = ContextWithLogger(ctx, zl)
	if got := FromContext(ctx); got != zl {
		t.Error("FromContext did not return the stored logger")
	}
}

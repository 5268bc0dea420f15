package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestFanoutHandlerCollapses(t *testing.T) {
	if _, ok := newFanoutHandler(nil, nil).(noopHandler); !ok {
		t.Fatal("expected noopHandler for all nil handlers")
	}
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := newFanoutHandler(nil, inner); h != inner {
		t.Fatal("expected single non-nil handler to be returned unwrapped")
	}
}

func TestFanoutHandlerRespectsPerHandlerLevels(t *testing.T) {
	var warnBuf, debugBuf bytes.Buffer
	warnOnly := slog.NewJSONHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn})
	everything := slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug})

	logger := slog.New(newFanoutHandler(warnOnly, everything)).With("path", "/a")
	logger.Debug("listing")
	logger.Warn("vanished")

	if strings.Contains(warnBuf.String(), "listing") {
		t.Fatalf("warn handler received debug record: %s", warnBuf.String())
	}
	if !strings.Contains(warnBuf.String(), "vanished") || !strings.Contains(debugBuf.String(), "listing") {
		t.Fatalf("records not fanned out: warn=%q debug=%q", warnBuf.String(), debugBuf.String())
	}
	if !strings.Contains(debugBuf.String(), `"path":"/a"`) {
		t.Fatalf("attrs lost in fanout: %s", debugBuf.String())
	}
	if newFanoutHandler(warnOnly, everything).Enabled(context.Background(), slog.LevelDebug) != true {
		t.Fatal("expected fanout enabled when any handler accepts the level")
	}
}

func TestSessionIDHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newSessionIDHandler(slog.NewJSONHandler(&buf, nil), "run-123")).With("extra", "value")
	logger.Info("test message")

	if !strings.Contains(buf.String(), `"session_id":"run-123"`) {
		t.Fatalf("expected session_id in output, got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"extra":"value"`) {
		t.Fatalf("expected extra attr in output, got: %s", buf.String())
	}
	if _, ok := newSessionIDHandler(nil, "x").(noopHandler); !ok {
		t.Fatal("expected noopHandler when base is nil")
	}
}

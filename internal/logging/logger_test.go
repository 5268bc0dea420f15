package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"zkcli/internal/logging"
)

func TestConsoleLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.NewComponentLogger(logger, "traverse").Info("node vanished", logging.String("path", "/a b"))

	got := buf.String()
	for _, fragment := range []string{"INFO traverse: node vanished", `path="/a b"`} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected %q in %q", fragment, got)
		}
	}
	if strings.Contains(got, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", got)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("message with caller")
	if !strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestDefaultLevelIsWarn(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output for default level: %q", buf.String())
	}
}

func TestJSONLoggerCarriesSessionID(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Output: &buf, SessionID: "abc"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("connected", logging.Error(errors.New("none")))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, buf.String())
	}
	if record["session_id"] != "abc" || record["level"] != "info" || record["msg"] != "connected" {
		t.Fatalf("unexpected record: %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", record)
	}
}

func TestFileTeeCapturesDebug(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "zkcli.log")
	logger, err := logging.New(logging.Options{Level: "warn", Output: &buf, FilePath: path})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("only in file")

	if buf.Len() != 0 {
		t.Fatalf("console should stay quiet at warn, got %q", buf.String())
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "only in file") {
		t.Fatalf("expected debug record in file, got %q", content)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLevelForVerbosity(t *testing.T) {
	cases := []struct {
		count      int
		configured string
		want       string
	}{
		{0, "", "warn"},
		{0, "error", "error"},
		{1, "error", "info"},
		{2, "", "debug"},
		{5, "", "debug"},
	}
	for _, tc := range cases {
		if got := logging.LevelForVerbosity(tc.count, tc.configured); got != tc.want {
			t.Fatalf("LevelForVerbosity(%d, %q): got %q want %q", tc.count, tc.configured, got, tc.want)
		}
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "cleanup failed", "ephemeral_cleanup_failed", logging.String(logging.FieldImpact, "custom"))
	got := buf.String()
	for _, fragment := range []string{"event_type=ephemeral_cleanup_failed", "error_hint=", "impact=custom"} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected %q in %q", fragment, got)
		}
	}
}

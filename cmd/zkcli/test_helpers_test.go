package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"zkcli/internal/config"
	"zkcli/internal/testsupport"
	"zkcli/internal/zkclient"
)

// openNamespace hands the same in-memory namespace to every invocation.
// Closing it is left to the test so state survives between commands.
type openNamespace struct {
	*testsupport.Namespace
}

func (openNamespace) Close() {}

type cliTestEnv struct {
	ns         *testsupport.Namespace
	configPath string

	mu     sync.Mutex
	dialed []zkclient.Options
}

type cliResult struct {
	stdout string
	stderr string
	code   int
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("ZKCLI_ADDR", "")
	t.Setenv("ZOOKEEPER_ADDR", "")
	return &cliTestEnv{
		ns:         testsupport.NewNamespace(t),
		configPath: filepath.Join(t.TempDir(), "zkcli.toml"),
	}
}

func (e *cliTestEnv) writeConfig(t *testing.T, body string) {
	t.Helper()
	if err := os.WriteFile(e.configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// useConfig writes cfg as the invocation's config file.
func (e *cliTestEnv) useConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	body, err := cfg.TOML()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	e.writeConfig(t, body)
}

func (e *cliTestEnv) environment(piped bool) environment {
	return environment{
		dial: func(_ context.Context, opts zkclient.Options) (zkclient.Client, error) {
			e.mu.Lock()
			e.dialed = append(e.dialed, opts)
			e.mu.Unlock()
			return openNamespace{e.ns}, nil
		},
		stdinPiped: func(io.Reader) bool { return piped },
	}
}

func (e *cliTestEnv) lastDial() zkclient.Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.dialed) == 0 {
		return zkclient.Options{}
	}
	return e.dialed[len(e.dialed)-1]
}

func (e *cliTestEnv) run(args ...string) cliResult {
	return e.runWith(context.Background(), nil, args...)
}

func (e *cliTestEnv) runStdin(stdin string, args ...string) cliResult {
	return e.runWith(context.Background(), &stdin, args...)
}

func (e *cliTestEnv) runWith(ctx context.Context, stdin *string, args ...string) cliResult {
	var stdout bytes.Buffer
	res := e.runTo(ctx, stdin, &stdout, args...)
	res.stdout = stdout.String()
	return res
}

// runTo is runWith with a caller supplied stdout; the result's stdout is left
// empty.
func (e *cliTestEnv) runTo(ctx context.Context, stdin *string, stdout io.Writer, args ...string) cliResult {
	in := strings.NewReader("")
	if stdin != nil {
		in = strings.NewReader(*stdin)
	}
	var stderr bytes.Buffer
	flags := []string{"--config", e.configPath, "--no-color"}
	code := run(ctx, e.environment(stdin != nil), append(flags, args...), in, stdout, &stderr)
	return cliResult{stderr: stderr.String(), code: code}
}

func requireCode(t *testing.T, res cliResult, want int) {
	t.Helper()
	if res.code != want {
		t.Fatalf("exit code: got %d want %d\nstdout: %s\nstderr: %s", res.code, want, res.stdout, res.stderr)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

// stuckWriter blocks every Write until release is closed, ignoring any
// context. entered is closed by the first Write.
type stuckWriter struct {
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newStuckWriter(t *testing.T) *stuckWriter {
	w := &stuckWriter{entered: make(chan struct{}), release: make(chan struct{})}
	t.Cleanup(func() { close(w.release) })
	return w
}

func (w *stuckWriter) Write(p []byte) (int, error) {
	w.once.Do(func() { close(w.entered) })
	<-w.release
	return len(p), nil
}

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"zkcli/internal/config"
	"zkcli/internal/zkclient"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ZKCLI_ADDR", "")
	t.Setenv("ZOOKEEPER_ADDR", "")
	t.Chdir(t.TempDir())
	return home
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	home := isolate(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(home, ".config", "zkcli", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if cfg.Server.Address != zkclient.DefaultAddress {
		t.Fatalf("unexpected address: %q", cfg.Server.Address)
	}
	if cfg.Limits.MaxPayloadBytes != 1048575 {
		t.Fatalf("unexpected payload limit: %d", cfg.Limits.MaxPayloadBytes)
	}
	if cfg.SessionTimeout() != 10*time.Second || cfg.ConnectTimeout() != 5*time.Second {
		t.Fatalf("unexpected timeouts: %s %s", cfg.SessionTimeout(), cfg.ConnectTimeout())
	}
	acl := cfg.NodeACL()
	if len(acl) != 1 || acl[0] != zkclient.OpenACL()[0] {
		t.Fatalf("expected open ACL by default, got %+v", acl)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "console" || cfg.Output.Color != config.ColorAuto {
		t.Fatalf("unexpected logging/output defaults: %+v %+v", cfg.Logging, cfg.Output)
	}
}

func TestLoadCustomPath(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(t.TempDir(), "zkcli.toml")
	body := `
[server]
address = "zk1:2181,zk2:2181/app"
session_timeout_seconds = 30

[limits]
max_payload_bytes = 512

[acl]
scheme = "digest"
id = "ops:hash"
perms = "rwc"

[logging]
format = "JSON"
level = "Info"
file = "~/zkcli.log"

[output]
color = "never"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected custom path to resolve, got %q exists=%v", resolved, exists)
	}
	if cfg.Server.Address != "zk1:2181,zk2:2181/app" {
		t.Fatalf("unexpected address: %q", cfg.Server.Address)
	}
	if cfg.SessionTimeout() != 30*time.Second || cfg.ConnectTimeout() != 5*time.Second {
		t.Fatalf("unexpected timeouts: %s %s", cfg.SessionTimeout(), cfg.ConnectTimeout())
	}
	if cfg.Limits.MaxPayloadBytes != 512 {
		t.Fatalf("unexpected payload limit: %d", cfg.Limits.MaxPayloadBytes)
	}
	acl := cfg.NodeACL()
	want := zkclient.ACL{Perms: zkclient.PermRead | zkclient.PermWrite | zkclient.PermCreate, Scheme: "digest", ID: "ops:hash"}
	if len(acl) != 1 || acl[0] != want {
		t.Fatalf("unexpected ACL: got %+v want %+v", acl, want)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "info" {
		t.Fatalf("expected logging values lowercased, got %+v", cfg.Logging)
	}
	if cfg.Logging.File != filepath.Join(home, "zkcli.log") {
		t.Fatalf("expected log file expanded, got %q", cfg.Logging.File)
	}
	if cfg.Output.Color != config.ColorNever {
		t.Fatalf("unexpected color: %q", cfg.Output.Color)
	}
}

func TestLoadFindsProjectConfig(t *testing.T) {
	isolate(t)
	if err := os.WriteFile("zkcli.toml", []byte("[server]\naddress = \"project:2181\"\n"), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}
	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || filepath.Base(resolved) != "zkcli.toml" {
		t.Fatalf("expected project config, got %q exists=%v", resolved, exists)
	}
	if cfg.Server.Address != "project:2181" {
		t.Fatalf("unexpected address: %q", cfg.Server.Address)
	}
}

func TestEnvOverridesConfigFileAddress(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server]\naddress = \"file:2181\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("ZOOKEEPER_ADDR", "fallback:2181")
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Address != "fallback:2181" {
		t.Fatalf("expected ZOOKEEPER_ADDR to win over file, got %q", cfg.Server.Address)
	}

	t.Setenv("ZKCLI_ADDR", "primary:2181")
	cfg, _, _, err = config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Address != "primary:2181" {
		t.Fatalf("expected ZKCLI_ADDR to win over ZOOKEEPER_ADDR, got %q", cfg.Server.Address)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server]\nadress = \"typo:2181\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestCreateSample(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path, false); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample config is not valid TOML: %v", err)
	}
	if decoded.Server.Address != zkclient.DefaultAddress {
		t.Fatalf("sample address drifted from default: %q", decoded.Server.Address)
	}
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if err := config.CreateSample(path, false); err == nil {
		t.Fatal("expected CreateSample to refuse overwriting")
	}
	if err := config.CreateSample(path, true); err != nil {
		t.Fatalf("CreateSample with overwrite returned error: %v", err)
	}
}

func TestTOMLRoundTripsEffectiveConfig(t *testing.T) {
	cfg := config.Default()
	out, err := cfg.TOML()
	if err != nil {
		t.Fatalf("TOML returned error: %v", err)
	}
	if !strings.Contains(out, "[server]") || !strings.Contains(out, "max_payload_bytes = 1048575") {
		t.Fatalf("unexpected rendering: %s", out)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"address", func(c *config.Config) { c.Server.Address = "/only-chroot" }, "server.address"},
		{"limit", func(c *config.Config) { c.Limits.MaxPayloadBytes = -1 }, "limits.max_payload_bytes"},
		{"perms", func(c *config.Config) { c.ACL.Perms = "rx" }, "acl.perms"},
		{"acl id", func(c *config.Config) { c.ACL.ID = "" }, "acl.id"},
		{"format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"color", func(c *config.Config) { c.Output.Color = "sometimes" }, "output.color"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %s error, got %v", tc.want, err)
			}
		})
	}
}

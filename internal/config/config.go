package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"zkcli/internal/zkclient"
)

//go:embed sample_config.toml
var sampleConfig string

// Server contains the ensemble connect string and session timings.
type Server struct {
	Address               string `toml:"address"`
	SessionTimeoutSeconds int    `toml:"session_timeout_seconds"`
	ConnectTimeoutSeconds int    `toml:"connect_timeout_seconds"`
}

// Limits bounds what the client will send to the server.
type Limits struct {
	// MaxPayloadBytes matches the server's jute.maxbuffer by default.
	MaxPayloadBytes int `toml:"max_payload_bytes"`
}

// ACL is the access policy attached to nodes created by write --force and create.
type ACL struct {
	Scheme string `toml:"scheme"`
	ID     string `toml:"id"`
	Perms  string `toml:"perms"`
}

// Logging contains configuration for diagnostic output on stderr.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File, when set, receives a debug-level JSON copy of every record.
	File string `toml:"file"`
}

// Output controls how command results are rendered on stdout.
type Output struct {
	Color string `toml:"color"`
}

// Config encapsulates all configuration values for zkcli.
type Config struct {
	Server  Server  `toml:"server"`
	Limits  Limits  `toml:"limits"`
	ACL     ACL     `toml:"acl"`
	Logging Logging `toml:"logging"`
	Output  Output  `toml:"output"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error; the defaults are returned with exists set to false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// SessionTimeout returns the negotiated session timeout requested from the server.
func (c *Config) SessionTimeout() time.Duration {
	return time.Duration(c.Server.SessionTimeoutSeconds) * time.Second
}

// ConnectTimeout bounds how long Dial waits for a session.
func (c *Config) ConnectTimeout() time.Duration {
	return time.Duration(c.Server.ConnectTimeoutSeconds) * time.Second
}

// NodeACL converts the [acl] section into the adapter's ACL list.
func (c *Config) NodeACL() []zkclient.ACL {
	perms, err := zkclient.ParsePerms(c.ACL.Perms)
	if err != nil {
		// Validate rejects bad perms; reaching here means the config was built by hand.
		perms = zkclient.PermAll
	}
	return []zkclient.ACL{{Perms: perms, Scheme: c.ACL.Scheme, ID: c.ACL.ID}}
}

// TOML renders the effective configuration.
func (c *Config) TOML() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(data), nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
// An existing file is left untouched unless overwrite is set.
func CreateSample(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config %s already exists", path)
		}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

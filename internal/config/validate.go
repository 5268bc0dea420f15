package config

import (
	"errors"
	"fmt"

	"zkcli/internal/zkclient"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLimits(); err != nil {
		return err
	}
	if err := c.validateACL(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateOutput()
}

func (c *Config) validateServer() error {
	if _, err := zkclient.ParseAddress(c.Server.Address); err != nil {
		return fmt.Errorf("server.address: %w", err)
	}
	if c.Server.SessionTimeoutSeconds < 0 {
		return errors.New("server.session_timeout_seconds must be positive")
	}
	if c.Server.ConnectTimeoutSeconds < 0 {
		return errors.New("server.connect_timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLimits() error {
	if c.Limits.MaxPayloadBytes < 0 {
		return errors.New("limits.max_payload_bytes must be positive")
	}
	return nil
}

func (c *Config) validateACL() error {
	if _, err := zkclient.ParsePerms(c.ACL.Perms); err != nil {
		return fmt.Errorf("acl.perms: %w", err)
	}
	if c.ACL.ID == "" {
		return fmt.Errorf("acl.id must be set for scheme %q", c.ACL.Scheme)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateOutput() error {
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	default:
		return fmt.Errorf("output.color: unsupported value %q", c.Output.Color)
	}
}

package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeServer()
	c.normalizeACL()
	c.normalizeOutput()
	return c.normalizeLogging()
}

func (c *Config) normalizeServer() {
	for _, name := range addressEnvVars {
		if value, ok := os.LookupEnv(name); ok && strings.TrimSpace(value) != "" {
			c.Server.Address = value
			break
		}
	}
	c.Server.Address = strings.TrimSpace(c.Server.Address)
	if c.Server.Address == "" {
		c.Server.Address = Default().Server.Address
	}
	if c.Server.SessionTimeoutSeconds == 0 {
		c.Server.SessionTimeoutSeconds = defaultSessionTimeoutSeconds
	}
	if c.Server.ConnectTimeoutSeconds == 0 {
		c.Server.ConnectTimeoutSeconds = defaultConnectTimeoutSeconds
	}
	if c.Limits.MaxPayloadBytes == 0 {
		c.Limits.MaxPayloadBytes = defaultMaxPayloadBytes
	}
}

func (c *Config) normalizeACL() {
	c.ACL.Scheme = strings.TrimSpace(c.ACL.Scheme)
	if c.ACL.Scheme == "" {
		c.ACL.Scheme = defaultACLScheme
	}
	c.ACL.ID = strings.TrimSpace(c.ACL.ID)
	if c.ACL.ID == "" && c.ACL.Scheme == defaultACLScheme {
		c.ACL.ID = defaultACLID
	}
	c.ACL.Perms = strings.ToLower(strings.TrimSpace(c.ACL.Perms))
	if c.ACL.Perms == "" {
		c.ACL.Perms = defaultACLPerms
	}
}

func (c *Config) normalizeOutput() {
	c.Output.Color = strings.ToLower(strings.TrimSpace(c.Output.Color))
	if c.Output.Color == "" {
		c.Output.Color = defaultColor
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) != "" {
		expanded, err := expandPath(c.Logging.File)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}

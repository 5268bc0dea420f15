package config

import "zkcli/internal/zkclient"

const (
	defaultConfigPath            = "~/.config/zkcli/config.toml"
	projectConfigName            = "zkcli.toml"
	defaultSessionTimeoutSeconds = 10
	defaultConnectTimeoutSeconds = 5
	defaultMaxPayloadBytes       = 0xfffff
	defaultACLScheme             = "world"
	defaultACLID                 = "anyone"
	defaultACLPerms              = "all"
	defaultLogFormat             = "console"
	defaultLogLevel              = "warn"
	defaultColor                 = ColorAuto
)

// Color modes accepted by [output] color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Environment variables consulted for the server address, in order.
var addressEnvVars = []string{"ZKCLI_ADDR", "ZOOKEEPER_ADDR"}

// Default returns a Config populated with built-in defaults.
func Default() Config {
	return Config{
		Server: Server{
			Address:               zkclient.DefaultAddress,
			SessionTimeoutSeconds: defaultSessionTimeoutSeconds,
			ConnectTimeoutSeconds: defaultConnectTimeoutSeconds,
		},
		Limits: Limits{
			MaxPayloadBytes: defaultMaxPayloadBytes,
		},
		ACL: ACL{
			Scheme: defaultACLScheme,
			ID:     defaultACLID,
			Perms:  defaultACLPerms,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Output: Output{
			Color: defaultColor,
		},
	}
}

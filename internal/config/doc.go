// Package config loads, normalizes, and validates zkcli configuration data.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the ZKCLI_ADDR and ZOOKEEPER_ADDR environment
// fallbacks for the server address. Command-line flags are applied on top by
// the caller, so the effective precedence is flag, then environment, then
// file, then defaults.
//
// Always obtain settings through this package so the dispatcher receives a
// validated server address, ACL and payload limit in one pass.
package config

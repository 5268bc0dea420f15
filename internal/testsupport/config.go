package testsupport

import (
	"path/filepath"
	"testing"

	"zkcli/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a default config whose log file lives in a per-test temp
// directory, then applies opts.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Output.Color = config.ColorNever

	builder := &configBuilder{
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithPayloadLimit overrides [limits] max_payload_bytes.
func WithPayloadLimit(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Limits.MaxPayloadBytes = n
	}
}

// WithACL overrides the [acl] section.
func WithACL(scheme, id, perms string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.ACL = config.ACL{Scheme: scheme, ID: id, Perms: perms}
	}
}

// WithLogFile points [logging] file into the test's temp directory.
func WithLogFile() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.File = filepath.Join(b.baseDir, "logs", "zkcli.log")
	}
}

package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"zkcli/internal/config"
	"zkcli/internal/ephemeral"
	"zkcli/internal/logging"
	"zkcli/internal/render"
	"zkcli/internal/zkclient"
	"zkcli/internal/zpath"
)

type globalFlags struct {
	addr      string
	addrSet   bool
	config    string
	verbosity int
	noColor   bool
}

// environment holds the process-level collaborators commands reach for.
type environment struct {
	dial       func(ctx context.Context, opts zkclient.Options) (zkclient.Client, error)
	stdinPiped func(r io.Reader) bool
}

func defaultEnvironment() environment {
	return environment{
		dial: func(ctx context.Context, opts zkclient.Options) (zkclient.Client, error) {
			session, err := zkclient.Dial(ctx, opts)
			if err != nil {
				return nil, err
			}
			return session, nil
		},
		stdinPiped: isPiped,
	}
}

type commandContext struct {
	env   environment
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(env environment, flags *globalFlags) *commandContext {
	return &commandContext{env: env, flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if addr := strings.TrimSpace(c.flags.addr); c.flags.addrSet && addr != "" {
			if _, err := zkclient.ParseAddress(addr); err != nil {
				c.configErr = err
				return
			}
			cfg.Server.Address = addr
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger(stderr io.Writer) (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.New(logging.Options{
			Level:     logging.LevelForVerbosity(c.flags.verbosity, cfg.Logging.Level),
			Format:    cfg.Logging.Format,
			Output:    stderr,
			FilePath:  cfg.Logging.File,
			SessionID: uuid.NewString(),
		})
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) colorMode(cfg *config.Config) string {
	if c.flags.noColor {
		return config.ColorNever
	}
	return cfg.Output.Color
}

// session is what a command body works with: a live client, the ephemeral
// manager guarding it and the resolved output settings.
type session struct {
	client    zkclient.Client
	ephemeral *ephemeral.Manager
	cfg       *config.Config
	logger    *slog.Logger
	out       io.Writer
	color     bool
}

// withSession dials the ensemble, runs fn inside an ephemeral cleanup scope
// and closes the client once cleanup finished.
func (c *commandContext) withSession(cmd *cobra.Command, name string, fn func(ctx context.Context, s *session) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	logger = logger.With(logging.String(logging.FieldCommand, name))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	client, err := c.env.dial(ctx, zkclient.Options{
		Address:        cfg.Server.Address,
		SessionTimeout: cfg.SessionTimeout(),
		ConnectTimeout: cfg.ConnectTimeout(),
		Logger:         logger,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	s := &session{
		client:    client,
		ephemeral: ephemeral.New(client, logger),
		cfg:       cfg,
		logger:    logger,
		out:       cmd.OutOrStdout(),
		color:     render.ShouldColorize(cmd.OutOrStdout(), c.colorMode(cfg)),
	}
	return ephemeral.Scope(ctx, s.ephemeral, func(ctx context.Context) error {
		return fn(ctx, s)
	})
}

// resolvePath applies the forgiving command-line path rules and reports
// every correction as a warning.
func (s *session) resolvePath(raw string) (zpath.Path, error) {
	p, warnings, err := zpath.Sanitize(raw)
	for _, warning := range warnings {
		s.logger.Warn("invalid path corrected", logging.String("detail", warning))
	}
	return p, err
}

func isPiped(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok {
		return r != nil
	}
	fd := file.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

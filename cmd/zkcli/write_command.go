package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"zkcli/internal/content"
	"zkcli/internal/logging"
	"zkcli/internal/zkclient"
	"zkcli/internal/zkerr"
)

func newWriteCommand(ctx *commandContext) *cobra.Command {
	var force bool
	var version int32

	cmd := &cobra.Command{
		Use:     "write <path> [content]",
		Aliases: []string{"set"},
		Short:   "Replace the payload of a node",
		Long: "Replace the payload of a node with the content argument or, when it is\n" +
			"absent, with everything piped on stdin. --force creates a missing node\n" +
			"and allows resetting the payload to empty.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, "write", func(runCtx context.Context, s *session) error {
				p, err := s.resolvePath(args[0])
				if err != nil {
					return err
				}
				data, err := ctx.resolveContent(cmd, args[1:], s.cfg.Limits.MaxPayloadBytes)
				if errors.Is(err, content.ErrNoContent) {
					if !force {
						return errors.New("nothing to write: pass the content as an argument or pipe it on stdin; use --force to reset the payload to empty")
					}
					data, err = nil, nil
				}
				if err != nil {
					return err
				}

				stat, err := s.client.Set(runCtx, p, data, version)
				if err == nil {
					s.logger.Info("payload written",
						logging.String(logging.FieldPath, p.String()),
						logging.Int("bytes", len(data)),
						logging.Int("version", int(stat.Version)),
					)
					return nil
				}
				if !force || !errors.Is(err, zkerr.ErrNodeNotFound) || version != zkclient.AnyVersion {
					return err
				}
				created, err := s.client.Create(runCtx, p, data, zkclient.CreateMode{}, s.cfg.NodeACL())
				if err != nil {
					return err
				}
				s.logger.Info("node created", logging.String(logging.FieldPath, created.String()), logging.Int("bytes", len(data)))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Create the node when missing and allow an empty payload")
	cmd.Flags().Int32Var(&version, "version", zkclient.AnyVersion, "Only write when the node is at this version")
	return cmd
}

// resolveContent picks the payload from the optional literal argument or stdin.
func (c *commandContext) resolveContent(cmd *cobra.Command, literal []string, limit int) ([]byte, error) {
	stdin := cmd.InOrStdin()
	src := content.Source{Stdin: stdin, StdinPiped: c.env.stdinPiped(stdin)}
	if len(literal) > 0 {
		src.Literal = &literal[0]
	}
	return content.Resolve(src, limit)
}

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"zkcli/internal/content"
	"zkcli/internal/logging"
	"zkcli/internal/zkclient"
)

func newCreateCommand(ctx *commandContext) *cobra.Command {
	var modes []string
	var hold bool

	cmd := &cobra.Command{
		Use:   "create <path> [content]",
		Short: "Create a node and print its path",
		Long: "Create a node holding the content argument or piped stdin (empty otherwise).\n" +
			"Ephemeral nodes are deleted before zkcli exits; --hold keeps the session,\n" +
			"and the node, alive until zkcli is interrupted.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := zkclient.ParseModes(modes)
			if err != nil {
				return err
			}
			return ctx.withSession(cmd, "create", func(runCtx context.Context, s *session) error {
				p, err := s.resolvePath(args[0])
				if err != nil {
					return err
				}
				data, err := ctx.resolveContent(cmd, args[1:], s.cfg.Limits.MaxPayloadBytes)
				if err != nil && !errors.Is(err, content.ErrNoContent) {
					return err
				}

				created, err := s.client.Create(runCtx, p, data, mode, s.cfg.NodeACL())
				if err != nil {
					return err
				}
				if mode.Persistence == zkclient.Ephemeral {
					s.ephemeral.Register(created)
				}
				s.logger.Info("node created",
					logging.String(logging.FieldPath, created.String()),
					logging.String("mode", mode.String()),
				)
				fmt.Fprintln(s.out, created.String())

				if !hold {
					return nil
				}
				s.logger.Info("holding session until interrupted", logging.String(logging.FieldPath, created.String()))
				<-runCtx.Done()
				return fmt.Errorf("hold %s: %w", created, runCtx.Err())
			})
		},
	}

	cmd.Flags().StringSliceVarP(&modes, "mode", "m", nil, "Node mode: persistent, ephemeral, sequential (repeatable)")
	cmd.Flags().BoolVar(&hold, "hold", false, "Keep the session open until interrupted")
	return cmd
}

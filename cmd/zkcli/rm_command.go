package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"zkcli/internal/logging"
	"zkcli/internal/traverse"
	"zkcli/internal/zkclient"
	"zkcli/internal/zkerr"
	"zkcli/internal/zpath"
)

func newRmCommand(ctx *commandContext) *cobra.Command {
	var recursive bool
	var version int32

	cmd := &cobra.Command{
		Use:     "rm <path>...",
		Aliases: []string{"rmdir"},
		Short:   "Delete nodes",
		Long: "Delete each named node. A node with children is refused unless -r is given.\n" +
			"Failures are reported per path and the remaining paths are still processed.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, "rm", func(runCtx context.Context, s *session) error {
				var firstErr error
				for _, raw := range args {
					err := removePath(runCtx, s, raw, recursive, version)
					if err == nil {
						continue
					}
					if errors.Is(err, context.Canceled) {
						return err
					}
					logging.ErrorWithContext(s.logger, "remove failed", "remove_failed",
						logging.String(logging.FieldPath, raw),
						logging.Error(err),
					)
					if firstErr == nil {
						firstErr = err
					}
				}
				return firstErr
			})
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Delete the node and its whole subtree")
	cmd.Flags().Int32Var(&version, "version", zkclient.AnyVersion, "Only delete when the node is at this version")
	return cmd
}

func removePath(ctx context.Context, s *session, raw string, recursive bool, version int32) error {
	p, err := s.resolvePath(raw)
	if err != nil {
		return err
	}
	if p.IsRoot() {
		return zkerr.Wrap(zkerr.ErrInvalidPath, "delete", p.String(), errors.New("refusing to delete the root"))
	}
	if !recursive {
		if err := s.client.Delete(ctx, p, version); err != nil {
			return err
		}
		s.ephemeral.Forget(p)
		return nil
	}
	return removeTree(ctx, s, p, version)
}

// removeTree deletes the subtree under root bottom-up. Descendants that
// vanish on their own are skipped; the root itself must still exist.
func removeTree(ctx context.Context, s *session, root zpath.Path, version int32) error {
	walker := traverse.New(ctx, s.client, root, traverse.Options{MaxDepth: traverse.Unbounded, Logger: s.logger})
	var nodes []zpath.Path
	for entry := range walker.All() {
		nodes = append(nodes, entry.Path)
	}
	if err := walker.Err(); err != nil {
		return err
	}

	for i := len(nodes) - 1; i >= 0; i-- {
		p := nodes[i]
		expected := zkclient.AnyVersion
		if p.Equal(root) {
			expected = version
		}
		if err := s.client.Delete(ctx, p, expected); err != nil {
			if errors.Is(err, zkerr.ErrNodeNotFound) && !p.Equal(root) {
				s.logger.Debug("node vanished before delete", logging.String(logging.FieldPath, p.String()))
				continue
			}
			if errors.Is(err, zkerr.ErrNotEmpty) {
				return fmt.Errorf("%w (children were added while deleting)", err)
			}
			return err
		}
		s.ephemeral.Forget(p)
		s.logger.Info("node deleted", logging.String(logging.FieldPath, p.String()))
	}
	return nil
}

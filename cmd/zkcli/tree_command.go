package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"zkcli/internal/render"
	"zkcli/internal/traverse"
)

func newTreeCommand(ctx *commandContext) *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:     "tree [path]",
		Aliases: []string{"t"},
		Short:   "Print a subtree with box-drawing connectors",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, "tree", func(runCtx context.Context, s *session) error {
				root, err := s.resolvePath(optionalArg(args))
				if err != nil {
					return err
				}
				walker := traverse.New(runCtx, s.client, root, traverse.Options{MaxDepth: depth, Logger: s.logger})
				for walker.Next() {
					fmt.Fprintln(s.out, render.TreeLine(walker.Entry(), s.color))
				}
				return walker.Err()
			})
		},
	}

	cmd.Flags().IntVarP(&depth, "depth", "L", traverse.Unbounded, "Descend at most this many levels below the path (-1 for unlimited)")
	return cmd
}

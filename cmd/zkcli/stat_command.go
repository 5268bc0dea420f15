package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"zkcli/internal/render"
)

func newStatCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stat <path>",
		Short: "Show the metadata of a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, "stat", func(runCtx context.Context, s *session) error {
				p, err := s.resolvePath(args[0])
				if err != nil {
					return err
				}
				stat, err := s.client.Stat(runCtx, p)
				if err != nil {
					return err
				}
				fmt.Fprintln(s.out, render.StatTable(p, stat))
				return nil
			})
		},
	}
}

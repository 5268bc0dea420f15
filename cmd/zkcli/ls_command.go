package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"zkcli/internal/render"
	"zkcli/internal/traverse"
)

func newLsCommand(ctx *commandContext) *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:     "ls [path]",
		Aliases: []string{"list", "l", "ll"},
		Short:   "List the children of a node",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.CalledAs() == "ll" {
				long = true
			}
			return ctx.withSession(cmd, "ls", func(runCtx context.Context, s *session) error {
				root, err := s.resolvePath(optionalArg(args))
				if err != nil {
					return err
				}
				walker := traverse.New(runCtx, s.client, root, traverse.Options{MaxDepth: 1, Logger: s.logger})
				var children []render.ListingEntry
				for entry := range walker.All() {
					if entry.Depth == 0 {
						continue
					}
					children = append(children, render.ListingEntry{Name: entry.Path.Base(), Stat: entry.Stat})
				}
				if err := walker.Err(); err != nil {
					return err
				}

				if long {
					if len(children) > 0 {
						fmt.Fprintln(s.out, render.Listing(children, s.color))
					}
					return nil
				}
				names := make([]string, 0, len(children))
				for _, child := range children {
					names = append(names, render.NodeName(child.Name, child.Stat, s.color))
				}
				fmt.Fprintln(s.out, strings.Join(names, " "))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, "Show version, size and mode in a table")
	return cmd
}

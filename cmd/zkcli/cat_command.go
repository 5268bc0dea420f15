package main

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"zkcli/internal/zkerr"
)

func newCatCommand(ctx *commandContext) *cobra.Command {
	var binary bool

	cmd := &cobra.Command{
		Use:     "cat <path>",
		Aliases: []string{"bat"},
		Short:   "Print the payload of a node",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, "cat", func(runCtx context.Context, s *session) error {
				p, err := s.resolvePath(args[0])
				if err != nil {
					return err
				}
				data, _, err := s.client.Get(runCtx, p)
				if err != nil {
					return err
				}
				if binary {
					if _, err := s.out.Write(data); err != nil {
						return zkerr.Wrap(zkerr.ErrIO, "write", "stdout", err)
					}
					return nil
				}
				if !utf8.Valid(data) {
					return fmt.Errorf("%s holds binary data; use --binary to print the raw bytes", p)
				}
				fmt.Fprintln(s.out, string(data))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&binary, "binary", "b", false, "Write the raw payload without UTF-8 checks or a trailing newline")
	return cmd
}

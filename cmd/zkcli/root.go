package main

import (
	"github.com/spf13/cobra"

	"zkcli/internal/zkclient"
)

func newRootCommand(env environment) *cobra.Command {
	var flags globalFlags

	ctx := newCommandContext(env, &flags)

	rootCmd := &cobra.Command{
		Use:           "zkcli",
		Short:         "Browse and edit a ZooKeeper namespace like a filesystem",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			flags.addrSet = cmd.Flags().Changed("addr")
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.addr, "addr", "a", zkclient.DefaultAddress, "ZooKeeper connect string host:port[,host:port...][/chroot]")
	pf.StringVarP(&flags.config, "config", "c", "", "Configuration file path")
	pf.CountVarP(&flags.verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	pf.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newLsCommand(ctx))
	rootCmd.AddCommand(newTreeCommand(ctx))
	rootCmd.AddCommand(newCatCommand(ctx))
	rootCmd.AddCommand(newRmCommand(ctx))
	rootCmd.AddCommand(newWriteCommand(ctx))
	rootCmd.AddCommand(newCreateCommand(ctx))
	rootCmd.AddCommand(newStatCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

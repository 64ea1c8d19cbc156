// Package cli wires the command-line interface.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/acrovato/gmshcfd/internal/infra/logger"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	var cleanup func() error

	cmd := &cobra.Command{
		Use:          "gmshcfd",
		Short:        "gmshcfd — CFD mesh topology builder for lifting surfaces",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			wd, err := os.Getwd()
			if err != nil {
				wd = "."
			}
			cleanup, _ = logger.Setup(logger.Config{Root: wd, Debug: debug})
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if cleanup != nil {
				_ = cleanup()
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .gmshcfd/logs/gmshcfd.log")

	cmd.AddCommand(generateCmd())
	cmd.AddCommand(validateCmd())
	cmd.AddCommand(sharpenCmd())
	cmd.AddCommand(versionCmd())
	return cmd
}

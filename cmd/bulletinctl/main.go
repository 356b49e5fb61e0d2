package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agroclimatic/bulletins/config"
	"github.com/agroclimatic/bulletins/pkg/logger"
)

var (
	version = config.VERSION
	commit  = "unknown"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	log := logger.NewConsoleLogger(stderr)

	rootCmd := &cobra.Command{
		Use:           "bulletinctl",
		Short:         "bulletinctl - agroclimatic bulletin tools",
		Long:          `bulletinctl renders bulletin templates to HTML without the API.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bulletinctl version %s\n", version)
			if commit != "unknown" {
				fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", commit)
			}
		},
	}

	rootCmd.AddCommand(newRenderCmd(log), versionCmd)
	return rootCmd
}

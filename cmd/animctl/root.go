package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/phanxgames/animated/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "animctl",
	Short:         "animctl drives animated graphs from scenario scripts",
	Long:          `animctl builds the node graph a YAML scenario declares, steps it on a virtual frame clock and prints what a host would receive.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
}

func loggerFor(cmd *cobra.Command) (*slog.Logger, error) {
	name, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(name)
	if err != nil {
		return nil, err
	}
	return logging.NewWriter(cmd.ErrOrStderr(), level), nil
}

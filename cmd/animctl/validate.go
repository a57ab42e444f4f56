package main

import (
	"fmt"

	"github.com/phanxgames/animated/script"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <script.yaml>",
	Short: "Check a scenario script",
	Long:  `Parses the script and builds its graph without running any step. Unknown nodes, bad ranges and unknown actions are reported.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := script.Load(args[0])
		if err != nil {
			return err
		}
		if _, err := script.NewRunner(s); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d steps\n", args[0], len(s.Steps))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

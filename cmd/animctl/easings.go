package main

import (
	"fmt"

	"github.com/phanxgames/animated"
	"github.com/spf13/cobra"
)

var easingsCmd = &cobra.Command{
	Use:   "easings",
	Short: "List the easing names scripts accept",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range animated.EasingNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	rootCmd.AddCommand(easingsCmd)
}

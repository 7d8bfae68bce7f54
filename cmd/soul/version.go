package main

import (
	"fmt"

	"github.com/aretw0/soul"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of soul",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "soul version %s\n", soul.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/soul/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "soul",
	Short: "Soul applies attribute patches to observable models",
	Long: `Soul loads YAML or JSON documents into observable models, applies patches to them
and prints every change event they emit.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringP("format", "f", "auto", "Output format (auto, text, json, yaml)")
	rootCmd.PersistentFlags().Bool("metrics", false, "Print event counters to stderr when done")
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	name, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(name)
	if err != nil {
		return nil, err
	}
	return logging.New(cmd.ErrOrStderr(), level), nil
}

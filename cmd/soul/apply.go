package main

import (
	"github.com/aretw0/soul/internal/cli"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply BASE [PATCH...]",
	Short: "Apply patches to a base document",
	Long: `Loads BASE as the initial attributes of a model, sets each PATCH on it in order and
prints every change event followed by the final document.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		metrics, _ := cmd.Flags().GetBool("metrics")
		freeze, _ := cmd.Flags().GetBool("freeze")
		noExtend, _ := cmd.Flags().GetBool("no-extend")
		cont, _ := cmd.Flags().GetBool("continue")

		return cli.Apply(cli.ApplyOptions{
			BasePath:    args[0],
			PatchPaths:  args[1:],
			Format:      format,
			Freeze:      freeze,
			NoExtend:    noExtend,
			Metrics:     metrics,
			Logger:      logger,
			Out:         cmd.OutOrStdout(),
			ErrOut:      cmd.ErrOrStderr(),
			ContinueErr: cont,
		})
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().Bool("freeze", false, "Freeze the model after loading BASE")
	applyCmd.Flags().Bool("no-extend", false, "Reject patches that add new keys")
	applyCmd.Flags().Bool("continue", false, "Report rejected patches and keep going")
}

package main

import (
	"github.com/aretw0/soul/internal/cli"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set MEMBERS...",
	Short: "Build a set of models and watch their changes bubble up",
	Long: `Each YAML document found in MEMBERS becomes a child of one aggregate set.
The optional patch is applied to the child at --index and members listed in --remove
are dropped afterwards. Every aggregate event is printed, then the final set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		metrics, _ := cmd.Flags().GetBool("metrics")
		patch, _ := cmd.Flags().GetString("patch")
		index, _ := cmd.Flags().GetInt("index")
		remove, _ := cmd.Flags().GetIntSlice("remove")

		return cli.RunSet(cli.SetOptions{
			MemberPaths: args,
			PatchPath:   patch,
			PatchIndex:  index,
			Remove:      remove,
			Format:      format,
			Metrics:     metrics,
			Logger:      logger,
			Out:         cmd.OutOrStdout(),
			ErrOut:      cmd.ErrOrStderr(),
		})
	},
}

func init() {
	rootCmd.AddCommand(setCmd)

	setCmd.Flags().String("patch", "", "Document to set on one member")
	setCmd.Flags().Int("index", 0, "Member receiving --patch, in load order")
	setCmd.Flags().IntSlice("remove", nil, "Members to remove, in load order")
}

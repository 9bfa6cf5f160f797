package cli

import (
	"github.com/spf13/cobra"

	"github.com/fableworks/namekit/internal/pipeline"
)

func newFixCommand(flags *GlobalFlags) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "fix [manifest...]",
		Short: "Repair asset naming problems in place",
		Long: `Fix assigns an id to every asset that lacks one and renames every asset
whose name violates the naming rules, then writes the repaired manifests
back. Repaired names keep as much of the original as the rules allow.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := runPipeline(cmd, flags, pipeline.RunOptions{
				Manifests: args,
				Fix:       true,
				DryRun:    dryRun,
			}, nil)
			if err != nil {
				return WrapExit(ExitFailure, err)
			}

			printer := newPrinter(cmd.OutOrStdout(), summary.Lang, flags.Quiet)
			printer.Renames(summary.Renames)
			printer.FixResult(len(summary.Renames), summary.NewIDs, dryRun)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without writing")
	return cmd
}

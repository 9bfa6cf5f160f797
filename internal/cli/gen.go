package cli

import (
	"github.com/spf13/cobra"

	"github.com/fableworks/namekit/internal/pipeline"
)

func newGenCommand(flags *GlobalFlags) *cobra.Command {
	var (
		dryRun bool
		fix    bool
		out    string
	)

	cmd := &cobra.Command{
		Use:   "gen [manifest...]",
		Short: "Generate declaration stubs for project assets",
		Long: `Gen renders one Go source file per manifest declaring an exported
string constant for every sprite, sound and backdrop, so project code
refers to assets through identifiers the compiler checks. Manifests with
naming problems are skipped unless --fix repairs them first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := runPipeline(cmd, flags, pipeline.RunOptions{
				Manifests:   args,
				Gen:         true,
				Fix:         fix,
				DryRun:      dryRun,
				OutOverride: out,
			}, nil)
			if err != nil {
				return WrapExit(ExitFailure, err)
			}

			printer := newPrinter(cmd.OutOrStdout(), summary.Lang, flags.Quiet)
			printer.Renames(summary.Renames)
			printer.Files(summary.Files)

			skipped := 0
			if !fix {
				for _, report := range summary.Reports {
					if !report.Clean() {
						skipped++
					}
				}
			}
			printer.GenResult(len(summary.Files), skipped, dryRun)
			if skipped > 0 {
				return WrapExit(ExitFindings, &findingsError{count: summary.Findings()})
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the files that would be written without writing them")
	cmd.Flags().BoolVar(&fix, "fix", false, "Repair naming problems before generating")
	cmd.Flags().StringVar(&out, "out", "", "Override the output directory; relative paths resolve against the config directory")
	return cmd
}

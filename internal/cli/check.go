package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fableworks/namekit/internal/cache"
	"github.com/fableworks/namekit/internal/pipeline"
)

func newCheckCommand(flags *GlobalFlags) *cobra.Command {
	var cacheDir string

	cmd := &cobra.Command{
		Use:   "check [manifest...]",
		Short: "Report asset naming problems",
		Long: `Check lints every configured project manifest (or the manifests given
as arguments) against the asset naming rules and prints one line per
problem. The manifests are not modified.

With --cache-dir, manifests whose content already passed a previous
check are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var stamps cache.Cache
			if cacheDir != "" {
				fc, err := cache.NewFileCache(cacheDir)
				if err != nil {
					return WrapExit(ExitFailure, fmt.Errorf("open check cache: %w", err))
				}
				stamps = fc
			}

			summary, err := runPipeline(cmd, flags, pipeline.RunOptions{Manifests: args}, stamps)
			if err != nil {
				return WrapExit(ExitFailure, err)
			}

			printer := newPrinter(cmd.OutOrStdout(), summary.Lang, flags.Quiet)
			printer.Reports(summary.Reports)
			if n := summary.Findings(); n > 0 {
				printer.Problems(n)
				return WrapExit(ExitFindings, &findingsError{count: n})
			}
			printer.CleanResult()
			return nil
		},
	}

	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Directory for clean-check stamps; skips unchanged manifests")
	return cmd
}

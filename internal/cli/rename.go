package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fableworks/namekit/internal/assetname"
	"github.com/fableworks/namekit/internal/lang"
	"github.com/fableworks/namekit/internal/manifest"
	"github.com/fableworks/namekit/internal/pipeline"
	"github.com/fableworks/namekit/internal/renameplan"
)

func newRenameCommand(flags *GlobalFlags) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "rename <manifest> <plan>",
		Short: "Apply a batch rename plan to a manifest",
		Long: `Rename applies a plan file to one manifest. A plan is a line-oriented
script, one rename per line:

  sprite "Old Hero" -> "Hero"
  sound "pop!" -> "pop"
  backdrop "night" -> "nightSky"
  costume "Hero" "walk 1" -> "walk1"

Every target name is validated against the naming rules before it is
applied. The plan stops at the first invalid rename and the manifest
file is left untouched.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRename(cmd, flags, args[0], args[1], dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the plan without writing the manifest")
	return cmd
}

func runRename(cmd *cobra.Command, flags *GlobalFlags, manifestPath, planPath string, dryRun bool) error {
	langTag, extraReserved, err := loadNamingSettings(flags)
	if err != nil {
		return WrapExit(ExitFailure, err)
	}

	planData, err := os.ReadFile(planPath)
	if err != nil {
		return WrapExit(ExitFailure, fmt.Errorf("read rename plan: %w", err))
	}
	plan, err := renameplan.Parse(planPath, planData)
	if err != nil {
		return WrapExit(ExitFailure, err)
	}

	project, err := manifest.Load(manifestPath)
	if err != nil {
		return WrapExit(ExitFailure, err)
	}

	rules := assetname.New(assetname.Options{Reserved: lang.New(extraReserved)})
	printer := newPrinter(cmd.OutOrStdout(), langTag, flags.Quiet)

	applied, err := renameplan.Apply(plan, project, rules)
	if err != nil {
		var applyErr *renameplan.ApplyError
		if errors.As(err, &applyErr) {
			printer.RenameFailure(applyErr)
			return WrapExit(ExitFindings, &findingsError{count: 1})
		}
		return WrapExit(ExitFailure, err)
	}

	printer.AppliedRenames(applied)
	printer.RenameResult(len(applied), dryRun)
	if dryRun || len(applied) == 0 {
		return nil
	}

	data, err := project.Marshal()
	if err != nil {
		return WrapExit(ExitFailure, err)
	}
	if err := pipeline.NewOSWriter().WriteFile(manifestPath, data); err != nil {
		return WrapExit(ExitFailure, err)
	}
	return nil
}

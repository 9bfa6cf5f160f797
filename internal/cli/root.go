// Package cli implements the namekit command line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fableworks/namekit/internal/cache"
	"github.com/fableworks/namekit/internal/config"
	"github.com/fableworks/namekit/internal/fileset"
	"github.com/fableworks/namekit/internal/logging"
	"github.com/fableworks/namekit/internal/pipeline"
)

const (
	appName           = "namekit"
	defaultConfigFile = "namekit.toml"
)

// GlobalFlags carries the persistent flags shared by every subcommand.
type GlobalFlags struct {
	ConfigPath   string
	Lang         string
	Verbose      bool
	Quiet        bool
	NoColor      bool
	StrictConfig bool
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	root := NewRootCommand()
	return root.ExecuteContext(ctx)
}

func NewRootCommand() *cobra.Command {
	flags := &GlobalFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Asset naming toolkit for studio project manifests",
		Long: `namekit keeps asset names in studio project manifests safe for code
generation. Sprites, costumes, sounds and backdrops become identifiers
in the generated project code, so their names must fit the identifier
grammar, avoid reserved words and stay unique within their scope.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: applyGlobalFlags(flags),
	}

	cmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "", "Path to namekit.toml (default: ./namekit.toml when present)")
	cmd.PersistentFlags().StringVar(&flags.Lang, "lang", "", "Message language: en|zh (overrides the config)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Only print result lines")
	cmd.PersistentFlags().BoolVar(&flags.NoColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().BoolVar(&flags.StrictConfig, "strict-config", false, "Treat configuration warnings as errors")

	cmd.AddCommand(newCheckCommand(flags))
	cmd.AddCommand(newFixCommand(flags))
	cmd.AddCommand(newGenCommand(flags))
	cmd.AddCommand(newRenameCommand(flags))
	cmd.AddCommand(newReservedCommand(flags))

	return cmd
}

func applyGlobalFlags(flags *GlobalFlags) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, _ []string) error {
		if flags.NoColor {
			color.NoColor = true
		}
		if _, err := config.ParseLang(flags.Lang); err != nil {
			return WrapExit(ExitFailure, fmt.Errorf("invalid --lang value: %w", err))
		}
		return nil
	}
}

// runPipeline executes the pipeline with the shared environment wiring.
// Explicit manifest arguments ride in opts and override the config's
// project patterns. A nil stamps cache disables check-stamp caching.
func runPipeline(cmd *cobra.Command, flags *GlobalFlags, opts pipeline.RunOptions, stamps cache.Cache) (pipeline.Summary, error) {
	logger := logging.New(logging.Options{
		Verbose: flags.Verbose,
		Writer:  cmd.ErrOrStderr(),
	})

	opts.ConfigPath = resolveConfigPath(flags.ConfigPath)
	opts.Lang = config.Lang(flags.Lang)
	opts.StrictConfig = flags.StrictConfig

	pipe := pipeline.Pipeline{Env: pipeline.Environment{
		FSResolver: fileset.NewOSResolver,
		Logger:     logger,
		Writer:     pipeline.NewOSWriter(),
		Cache:      stamps,
	}}
	return pipe.Run(cmd.Context(), opts)
}

// resolveConfigPath honors an explicit --config value and otherwise
// discovers namekit.toml in the working directory. An empty result means
// no configuration file is in play.
func resolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile
	}
	return ""
}

// loadNamingSettings resolves the message language and extra reserved
// words for commands that work outside the pipeline.
func loadNamingSettings(flags *GlobalFlags) (config.Lang, []string, error) {
	langTag := config.LangEn
	var extra []string

	if path := resolveConfigPath(flags.ConfigPath); path != "" {
		result, err := config.Load(path, config.LoadOptions{Strict: flags.StrictConfig})
		if err != nil {
			return "", nil, err
		}
		langTag = result.Plan.Lang
		extra = result.Plan.ExtraReserved
	}

	if flags.Lang != "" {
		langTag = config.Lang(flags.Lang)
	}
	return langTag, extra, nil
}

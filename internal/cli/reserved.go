package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fableworks/namekit/internal/lang"
)

func newReservedCommand(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reserved",
		Short: "List the reserved words asset names must avoid",
		Long: `Reserved prints every word the naming rules refuse as an asset name,
one per line: the target language's keywords and predeclared type names,
plus any extra_reserved words from the configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, extraReserved, err := loadNamingSettings(flags)
			if err != nil {
				return WrapExit(ExitFailure, err)
			}

			out := cmd.OutOrStdout()
			for _, word := range lang.New(extraReserved).Words() {
				fmt.Fprintln(out, word)
			}
			return nil
		},
	}
}

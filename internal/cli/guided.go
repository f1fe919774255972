package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/chromascale/internal/colour"
)

func newGuidedCmd(_ *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "guided",
		Short: "Print the guided palette builder steps",
		Long: `Print the six guided steps, darkest first, each with its lightness range and
eight suggested swatches. Pick one swatch per step and save the result with:

  chromascale palettes save NAME --colors C1,C2,C3,C4,C5,C6`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, colour.GuidedSteps())
			}
			printGuided(out, isTerminal(out))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the steps as JSON")
	return cmd
}

func printGuided(w io.Writer, swatches bool) {
	for _, step := range colour.GuidedSteps() {
		fmt.Fprintf(w, "%d. %s (%s)\n   %s\n   ", step.Level, step.Role, step.LightnessRange, step.Description)
		for _, hex := range step.Swatches {
			if swatches {
				if rgb, err := colour.ParseHex(hex); err == nil {
					fmt.Fprint(w, colour.Swatch(rgb, 2), " ")
				}
			}
			fmt.Fprint(w, hex, " ")
		}
		fmt.Fprintln(w)
	}
}

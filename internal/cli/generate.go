package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/chromascale/internal/colour"
	"github.com/jmylchreest/chromascale/internal/store"
	"github.com/jmylchreest/chromascale/internal/suggest"
)

// modeValue is a pflag.Value that only accepts palette modes.
type modeValue colour.Mode

var _ pflag.Value = (*modeValue)(nil)

func (m *modeValue) String() string { return string(*m) }

func (m *modeValue) Set(s string) error {
	mode, err := colour.ParseMode(s)
	if err != nil {
		return err
	}
	*m = modeValue(mode)
	return nil
}

func (m *modeValue) Type() string { return "mode" }

// paletteFlags selects how a palette is produced. Shared by generate, render
// and palettes save.
type paletteFlags struct {
	mode       modeValue
	hue        float64
	saturation float64
	suggest    bool
}

func (f *paletteFlags) register(cmd *cobra.Command) {
	f.mode = modeValue(colour.ModeCohesive)
	cmd.Flags().VarP(&f.mode, "mode", "m", "palette mode (cohesive, vibrant)")
	cmd.Flags().Float64Var(&f.hue, "hue", 0, "base hue in degrees (requires --saturation)")
	cmd.Flags().Float64Var(&f.saturation, "saturation", 0, "saturation percentage (requires --hue)")
	cmd.Flags().BoolVar(&f.suggest, "suggest", false, "ask the AI model for a base hue and saturation")
	cmd.MarkFlagsRequiredTogether("hue", "saturation")
	cmd.MarkFlagsMutuallyExclusive("hue", "suggest")
}

// palette produces a palette per the flags: an explicit seed wins, then an AI
// suggestion, then the random path.
func (a *app) palette(ctx context.Context, cmd *cobra.Command, f *paletteFlags) (colour.Palette, error) {
	mode := colour.Mode(f.mode)
	gen := colour.NewGenerator()

	if cmd.Flags().Changed("hue") {
		seed := suggest.Suggestion{Hue: f.hue, Saturation: f.saturation}.Seed()
		a.logger.Debug("using seed", "hue", seed.Hue, "saturation", seed.Saturation)
		return gen.Generate(mode, &seed), nil
	}

	if f.suggest {
		s := a.suggester(ctx)
		if s == nil {
			a.logger.Warn("AI suggestions are unavailable, using a random palette")
			return gen.Generate(mode, nil), nil
		}
		p, used := suggest.SeededPalette(ctx, s, gen, mode, a.logger)
		if used {
			a.logger.Info("palette seeded from AI suggestion", "hue", p.Hue, "saturation", p.Saturation)
		}
		return p, nil
	}

	return gen.Generate(mode, nil), nil
}

// suggester returns the configured Suggester, or nil when AI is not
// configured or the client cannot be created.
func (a *app) suggester(ctx context.Context) suggest.Suggester {
	if !a.cfg.AIEnabled() {
		return nil
	}
	g, err := suggest.NewGemini(ctx, a.cfg.AI, a.logger.Named("suggest"))
	if err != nil {
		a.logger.Warn("failed to create AI client", "backend", a.cfg.AI.Backend, "error", err)
		return nil
	}
	return g
}

func (a *app) openStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, a.cfg.Database, a.logger)
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		flags   paletteFlags
		asJSON  bool
		preview bool
		save    string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a six-step colour palette",
		Long: `Generate a six-step palette from darkest to lightest.

Without a seed the base hue, saturation and lightness range are random. With
--hue and --saturation the palette is built from that seed using a fixed
lightness range. --suggest asks the configured AI model for the seed and falls
back to a random palette if the request fails.

In vibrant mode the hue drifts by a random 10 to 25 degrees per step.

Examples:
  # Random cohesive palette
  chromascale generate

  # Seeded vibrant palette with terminal swatches
  chromascale generate --mode vibrant --hue 210 --saturation 60 --preview

  # Ask the AI model and save the result
  chromascale generate --suggest --save "Morning"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			p, err := a.palette(ctx, cmd, &flags)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("save") {
				if err := a.savePalette(ctx, cmd.ErrOrStderr(), save, p); err != nil {
					return err
				}
			}

			if asJSON {
				return writeJSON(out, p)
			}
			printPalette(out, p, preview && isTerminal(out))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the palette as JSON")
	cmd.Flags().BoolVarP(&preview, "preview", "p", false, "show colour swatches when writing to a terminal")
	cmd.Flags().StringVar(&save, "save", "", "save the palette under this name")

	return cmd
}

func (a *app) savePalette(ctx context.Context, out io.Writer, name string, p colour.Palette) error {
	s, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	rec, err := s.Create(ctx, store.FromPalette(name, p))
	if err != nil {
		return fmt.Errorf("failed to save palette: %w", err)
	}
	a.logger.Info("palette saved", "id", rec.ID, "name", rec.Name)
	a.infof(out, "Saved palette %d (%s)\n", rec.ID, rec.Name)
	return nil
}

func printPalette(w io.Writer, p colour.Palette, swatches bool) {
	fmt.Fprintf(w, "Mode: %s  Hue: %.0f  Saturation: %d%%\n", p.Mode, p.Hue, p.Saturation)
	fmt.Fprint(w, p.Preview(swatches))
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/chromascale/internal/colour"
	"github.com/jmylchreest/chromascale/internal/render"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		flags     paletteFlags
		outputDir string
		paletteID int64
		uncolored bool
		title     string
		tmplDir   string
	)

	cmd := &cobra.Command{
		Use:   "render FILE|URL|-",
		Short: "Write an HTML preview and stylesheet for an SVG and a palette",
		Long: `Render an SVG illustration with a palette applied.

The SVG is annotated and written inline into preview.html alongside a
palette.css stylesheet that maps fill-1 to fill-6 onto the palette slots. The
palette is generated with the same flags as "generate" unless --palette-id
selects a saved one. --uncolored renders every layer white with a thin outline.

Examples:
  chromascale render drawing.svg --hue 30 --saturation 70 --output-dir out
  chromascale render drawing.svg --palette-id 3
  chromascale render drawing.svg --uncolored`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			doc, err := a.readSVG(ctx, cmd, args[0])
			if err != nil {
				return err
			}

			p, name, err := a.renderPalette(ctx, cmd, &flags, paletteID)
			if err != nil {
				return err
			}
			if title == "" {
				title = name
			}

			files, err := render.Render(doc, p, render.Options{Title: title, Uncolored: uncolored, TemplateDir: tmplDir})
			if err != nil {
				return err
			}
			paths, err := render.WriteFiles(outputDir, files)
			if err != nil {
				return err
			}
			for _, path := range paths {
				a.infof(cmd.OutOrStdout(), "Wrote %s\n", path)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "directory for preview.html and palette.css")
	cmd.Flags().Int64Var(&paletteID, "palette-id", 0, "use a saved palette")
	cmd.Flags().BoolVar(&uncolored, "uncolored", false, "render all layers white")
	cmd.Flags().StringVar(&title, "title", "", "preview title")
	cmd.Flags().StringVar(&tmplDir, "template-dir", render.DefaultTemplateDir(), "directory with custom palette.css.tmpl / preview.html.tmpl")
	cmd.MarkFlagsMutuallyExclusive("palette-id", "hue")
	cmd.MarkFlagsMutuallyExclusive("palette-id", "suggest")

	return cmd
}

// renderPalette loads the saved palette when id is set, otherwise generates one.
func (a *app) renderPalette(ctx context.Context, cmd *cobra.Command, flags *paletteFlags, id int64) (colour.Palette, string, error) {
	if id == 0 {
		p, err := a.palette(ctx, cmd, flags)
		return p, "", err
	}

	s, err := a.openStore(ctx)
	if err != nil {
		return colour.Palette{}, "", err
	}
	defer s.Close()

	rec, err := s.Get(ctx, id)
	if err != nil {
		return colour.Palette{}, "", fmt.Errorf("failed to load palette: %w", err)
	}
	return rec.Palette(), rec.Name, nil
}

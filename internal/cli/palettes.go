package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/chromascale/internal/colour"
	"github.com/jmylchreest/chromascale/internal/store"
)

func newPalettesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "palettes",
		Aliases: []string{"palette"},
		Short:   "Manage saved palettes",
	}
	cmd.AddCommand(
		newPalettesListCmd(a),
		newPalettesShowCmd(a),
		newPalettesSaveCmd(a),
		newPalettesDeleteCmd(a),
	)
	return cmd
}

func newPalettesListCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved palettes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			records, err := s.List(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), records)
			}
			if len(records) == 0 {
				a.infof(cmd.OutOrStdout(), "No saved palettes.\n")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), paletteTable(records).Render())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print palettes as JSON")
	return cmd
}

func paletteTable(records []store.Record) *Table {
	table := NewTable([]string{"ID", "NAME", "MODE", "HUE", "SAT", "COLOURS", "CREATED"})
	table.SetColumnMaxWidth(1, 24)
	for _, rec := range records {
		table.AddRow([]string{
			strconv.FormatInt(rec.ID, 10),
			rec.Name,
			string(rec.Mode),
			strconv.Itoa(rec.Hue),
			strconv.Itoa(rec.Saturation) + "%",
			strings.Join(rec.Colours, " "),
			rec.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return table
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid palette id: %s", s)
	}
	return id, nil
}

func newPalettesShowCmd(a *app) *cobra.Command {
	var (
		asJSON  bool
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one saved palette",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			rec, err := s.Get(ctx, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, rec)
			}
			fmt.Fprintf(out, "%s (#%d, saved %s)\n", rec.Name, rec.ID, rec.CreatedAt.Local().Format("2006-01-02 15:04"))
			printPalette(out, rec.Palette(), preview && isTerminal(out))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the palette as JSON")
	cmd.Flags().BoolVarP(&preview, "preview", "p", false, "show colour swatches when writing to a terminal")
	return cmd
}

func newPalettesSaveCmd(a *app) *cobra.Command {
	var (
		flags   paletteFlags
		colours []string
	)

	cmd := &cobra.Command{
		Use:   "save NAME",
		Short: "Save a palette",
		Long: `Save a palette under NAME.

With --colors the six colours are saved as given (darkest first) using the
guided-builder rules: blank entries become white and the hue and saturation
come from the first colour. Otherwise a palette is generated with the same
flags as "generate".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var name string
			if len(args) == 1 {
				name = args[0]
			}

			var (
				p   colour.Palette
				err error
			)
			if len(colours) > 0 {
				p, err = manualPalette(colours)
			} else {
				p, err = a.palette(ctx, cmd, &flags)
			}
			if err != nil {
				return err
			}
			return a.savePalette(ctx, cmd.OutOrStdout(), name, p)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringSliceVar(&colours, "colors", nil, "six comma-separated #RRGGBB colours, darkest first")
	cmd.MarkFlagsMutuallyExclusive("colors", "hue")
	cmd.MarkFlagsMutuallyExclusive("colors", "suggest")
	return cmd
}

func manualPalette(colours []string) (colour.Palette, error) {
	if len(colours) > colour.SlotCount {
		return colour.Palette{}, fmt.Errorf("expected at most %d colours, got %d", colour.SlotCount, len(colours))
	}
	var choices [colour.SlotCount]string
	for i, c := range colours {
		choices[i] = strings.TrimSpace(c)
	}
	return colour.GuidedPalette(choices)
}

func newPalettesDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a saved palette",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Delete(ctx, id); err != nil {
				return err
			}
			a.infof(cmd.OutOrStdout(), "Deleted palette %d\n", id)
			return nil
		},
	}
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/chromascale/internal/render"
)

func newTemplatesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage preview templates",
		Long: `The render command builds palette.css and preview.html from embedded
templates. Copies placed in the template directory replace the embedded ones.`,
	}

	var (
		dir   string
		force bool
	)
	dump := &cobra.Command{
		Use:   "dump",
		Short: "Copy the embedded templates into the template directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			written, err := render.DumpTemplates(dir, force)
			for _, path := range written {
				a.infof(cmd.OutOrStdout(), "Wrote %s\n", path)
			}
			if errors.Is(err, render.ErrTemplateExists) {
				a.logger.Warn("some templates were skipped, use --force to overwrite", "error", err)
				return nil
			}
			return err
		},
	}
	dump.Flags().StringVar(&dir, "dir", render.DefaultTemplateDir(), "destination directory")
	dump.Flags().BoolVar(&force, "force", false, "overwrite existing templates")

	list := &cobra.Command{
		Use:   "list",
		Short: "List embedded templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := render.TemplateNames()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	cmd.AddCommand(dump, list)
	return cmd
}

// Package cli provides the command-line interface for chromascale.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/chromascale/internal/config"
	"github.com/jmylchreest/chromascale/internal/version"
)

// app carries state shared by all subcommands of one root command.
type app struct {
	configPath string
	verbose    bool
	quiet      bool
	database   string

	cfg    *config.Config
	logger hclog.Logger
}

// NewRootCmd builds the chromascale command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "chromascale",
		Short: "Graduated colour palettes for layered SVG illustrations",
		Long: `chromascale generates six-step colour palettes, from a deep base tone to a
bright highlight, and applies them to SVG illustrations whose layer groups are
numbered 1 to 6.

Palettes can be random, seeded from a hue and saturation, suggested by an AI
model, or picked by hand from the guided swatches. Saved palettes live in a
local SQLite database and are also served over a JSON HTTP API.`,
		Version:           version.Version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&a.database, "database", "", "palette database path (\"memory\" for a throwaway store)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newVersionCmd(),
		newGenerateCmd(a),
		newAnnotateCmd(a),
		newRenderCmd(a),
		newTemplatesCmd(a),
		newPalettesCmd(a),
		newGuidedCmd(a),
		newServeCmd(a),
	)

	return rootCmd
}

// setup loads configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("database") {
		cfg.Database = a.database
	}
	if f := flags.Lookup("listen"); f != nil && f.Changed {
		cfg.Server.Listen = f.Value.String()
	}
	if f := flags.Lookup("cors-origins"); f != nil && f.Changed {
		origins, _ := flags.GetStringSlice("cors-origins")
		cfg.Server.CORSOrigins = origins
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level := cfg.Level()
	switch {
	case a.quiet:
		level = hclog.Error
	case a.verbose:
		level = hclog.Debug
	}

	a.cfg = cfg
	a.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "chromascale",
		Output: cmd.ErrOrStderr(),
		Level:  level,
	})
	a.logger.Debug("configuration loaded", "config", a.configPath, "database", cfg.Database)
	return nil
}

// infof prints human output unless --quiet is set.
func (a *app) infof(w io.Writer, format string, args ...any) {
	if a.quiet {
		return
	}
	fmt.Fprintf(w, format, args...)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		// Version output needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), version.GetInfo())
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")
	return cmd
}

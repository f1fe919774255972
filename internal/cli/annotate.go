package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/chromascale/internal/compression"
	"github.com/jmylchreest/chromascale/internal/svg"
	httputil "github.com/jmylchreest/chromascale/internal/util/http"
)

// readSVG loads a document from a file path, an HTTPS URL or "-" for stdin,
// unpacking compressed and archived input.
func (a *app) readSVG(ctx context.Context, cmd *cobra.Command, src string) (string, error) {
	var (
		data []byte
		err  error
	)

	switch {
	case src == "-":
		data, err = io.ReadAll(cmd.InOrStdin())
	case strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://"):
		a.logger.Debug("fetching svg", "url", src)
		data, err = httputil.Fetch(ctx, src, httputil.FetchOptions{
			Headers: map[string]string{"Accept": "image/svg+xml"},
		})
	default:
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read SVG from %s: %w", src, err)
	}
	data, err = compression.Decompress(data, src, 0)
	if err != nil {
		return "", fmt.Errorf("failed to unpack SVG from %s: %w", src, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("SVG from %s is empty", src)
	}
	return string(data), nil
}

func newAnnotateCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "annotate FILE|URL|-",
		Short: "Tag numbered SVG layer groups with fill classes",
		Long: `Annotate an exported SVG so a palette stylesheet can colour it.

Layer groups named 1 to 6 are exported as id="_x31_" to id="_x36_". The first
occurrence of each gains class="fill-1" to class="fill-6". Everything else in
the document is left exactly as it was, and annotating twice changes nothing.

The source may be a file, an HTTPS URL or "-" for standard input. Compressed
input (.svgz, .xz, .bz2) and zip or tar bundles holding an .svg are unpacked.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.readSVG(cmd.Context(), cmd, args[0])
			if err != nil {
				return err
			}

			if missing := svg.Missing(doc); len(missing) > 0 {
				a.logger.Warn("layer groups not found", "slots", missing)
			}
			annotated := svg.Annotate(doc)

			if output == "" || output == "-" {
				_, err := io.WriteString(cmd.OutOrStdout(), annotated)
				return err
			}
			if err := os.WriteFile(output, []byte(annotated), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			a.infof(cmd.ErrOrStderr(), "Annotated %d layer groups -> %s\n", len(svg.Slots(doc)), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the annotated SVG here instead of stdout")
	return cmd
}

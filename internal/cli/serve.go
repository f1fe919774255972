package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/chromascale/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the palette API:

  GET    /api/palettes              saved palettes, newest first
  POST   /api/palettes              save a palette
  GET    /api/palettes/{id}         one palette
  DELETE /api/palettes/{id}         delete a palette
  GET    /api/palettes/{id}/stylesheet
  POST   /api/palettes/generate     generate a palette
  POST   /api/ai/suggest            AI base hue and saturation
  POST   /api/svg/annotate          annotate an SVG body
  GET    /api/guided                guided builder steps
  GET    /health`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			opts := server.Options{
				Store:       s,
				Logger:      a.logger.Named("server"),
				CORSOrigins: a.cfg.Server.CORSOrigins,
			}
			if suggester := a.suggester(ctx); suggester != nil {
				opts.Suggester = suggester
			} else {
				a.logger.Info("AI suggestions disabled")
			}

			srv, err := server.New(opts)
			if err != nil {
				return err
			}
			return srv.Run(ctx, a.cfg.Server.Listen)
		},
	}
	cmd.Flags().String("listen", "", "listen address (overrides configuration)")
	cmd.Flags().StringSlice("cors-origins", nil, "allowed CORS origins")
	return cmd
}

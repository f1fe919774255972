// Package server is the JSON HTTP API over the palette generator, the
// palette store and the SVG annotator.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/chromascale/internal/colour"
	"github.com/jmylchreest/chromascale/internal/store"
	"github.com/jmylchreest/chromascale/internal/suggest"
)

// Request body limits.
const (
	DefaultMaxJSONBytes = 1 << 20
	DefaultMaxSVGBytes  = 10 << 20
)

const shutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	Store store.Store
	// Suggester is optional; without it the suggestion endpoint answers 503.
	Suggester    suggest.Suggester
	Generator    *colour.Generator
	Logger       hclog.Logger
	CORSOrigins  []string
	MaxJSONBytes int64
	MaxSVGBytes  int64
}

// Server is the HTTP API.
type Server struct {
	store        store.Store
	suggester    suggest.Suggester
	gen          *colour.Generator
	logger       hclog.Logger
	corsOrigins  []string
	maxJSONBytes int64
	maxSVGBytes  int64
}

// New creates a Server. A Store is required.
func New(opts Options) (*Server, error) {
	if opts.Store == nil {
		return nil, errors.New("server requires a palette store")
	}

	s := &Server{
		store:        opts.Store,
		suggester:    opts.Suggester,
		gen:          opts.Generator,
		logger:       opts.Logger,
		corsOrigins:  opts.CORSOrigins,
		maxJSONBytes: opts.MaxJSONBytes,
		maxSVGBytes:  opts.MaxSVGBytes,
	}
	if s.gen == nil {
		s.gen = colour.NewGenerator()
	}
	if s.logger == nil {
		s.logger = hclog.NewNullLogger()
	}
	if s.maxJSONBytes <= 0 {
		s.maxJSONBytes = DefaultMaxJSONBytes
	}
	if s.maxSVGBytes <= 0 {
		s.maxSVGBytes = DefaultMaxSVGBytes
	}
	return s, nil
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(s.logger))

	if len(s.corsOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.corsOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID", HeaderFillSlots},
			MaxAge:         300,
		}))
	}

	router.Get("/health", s.health)

	router.Route("/api", func(r chi.Router) {
		r.Route("/palettes", func(r chi.Router) {
			r.Get("/", s.listPalettes)
			r.Post("/", s.createPalette)
			r.Post("/generate", s.generatePalette)
			r.Get("/{id}", s.getPalette)
			r.Delete("/{id}", s.deletePalette)
			r.Get("/{id}/stylesheet", s.paletteStylesheet)
		})
		r.Post("/ai/suggest", s.suggestSeed)
		r.Post("/svg/annotate", s.annotateSVG)
		r.Get("/guided", s.guided)
	})

	return router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          s.logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true}),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

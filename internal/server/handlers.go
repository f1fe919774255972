package server

import (
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jmylchreest/chromascale/internal/colour"
	"github.com/jmylchreest/chromascale/internal/compression"
	"github.com/jmylchreest/chromascale/internal/render"
	"github.com/jmylchreest/chromascale/internal/security"
	"github.com/jmylchreest/chromascale/internal/store"
	"github.com/jmylchreest/chromascale/internal/suggest"
	"github.com/jmylchreest/chromascale/internal/svg"
	"github.com/jmylchreest/chromascale/internal/version"
)

// HeaderFillSlots lists the 1-based slots found by the annotate endpoint.
const HeaderFillSlots = "X-Fill-Slots"

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

func (s *Server) listPalettes(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("failed to list palettes", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to fetch palettes")
		return
	}
	s.writeJSON(w, http.StatusOK, records)
}

func (s *Server) createPalette(w http.ResponseWriter, r *http.Request) {
	var req savePaletteRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		if bodyTooLarge(err) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateRequest(&req); err != nil {
		s.respondValidation(w, err)
		return
	}

	rec := store.NewRecord{
		Name:       req.Name,
		Hue:        int(math.Round(*req.Hue)),
		Saturation: int(math.Round(*req.Saturation)),
		Colours:    req.Colours,
		Mode:       colour.Mode(req.Mode),
	}
	if len(req.Hues) > 0 {
		rec.Hues = make([]int, len(req.Hues))
		for i, h := range req.Hues {
			rec.Hues[i] = int(math.Round(h))
		}
	}

	saved, err := s.store.Create(r.Context(), rec)
	if err != nil {
		if errors.Is(err, store.ErrInvalidRecord) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("failed to save palette", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to save palette")
		return
	}
	s.writeJSON(w, http.StatusCreated, saved)
}

// paletteID parses the {id} route parameter, writing a 400 on failure.
func (s *Server) paletteID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		s.writeFieldError(w, "id", "Invalid palette id")
		return 0, false
	}
	return id, true
}

func (s *Server) getPalette(w http.ResponseWriter, r *http.Request) {
	id, ok := s.paletteID(w, r)
	if !ok {
		return
	}
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, err, "Failed to fetch palette")
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) deletePalette(w http.ResponseWriter, r *http.Request) {
	id, ok := s.paletteID(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.respondStoreError(w, err, "Failed to delete palette")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) paletteStylesheet(w http.ResponseWriter, r *http.Request) {
	id, ok := s.paletteID(w, r)
	if !ok {
		return
	}
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, err, "Failed to fetch palette")
		return
	}

	uncolored, _ := strconv.ParseBool(r.URL.Query().Get("uncolored"))
	css, err := render.Stylesheet(rec.Palette(), render.Options{Title: rec.Name, Uncolored: uncolored})
	if err != nil {
		s.logger.Error("failed to render stylesheet", "id", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to render stylesheet")
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write(css)
}

func (s *Server) generatePalette(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	// An empty body means "random cohesive palette".
	if r.ContentLength != 0 {
		if err := s.decodeJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
			if bodyTooLarge(err) {
				s.writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
				return
			}
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if err := validateRequest(&req); err != nil {
		s.respondValidation(w, err)
		return
	}
	if (req.Hue == nil) != (req.Saturation == nil) {
		field := "hue"
		if req.Saturation == nil {
			field = "saturation"
		}
		s.writeFieldError(w, field, "hue and saturation must be supplied together")
		return
	}

	mode := colour.ModeCohesive
	if req.Mode != "" {
		mode = colour.Mode(req.Mode)
	}

	switch {
	case req.Hue != nil:
		seed := suggest.Suggestion{Hue: *req.Hue, Saturation: *req.Saturation}.Seed()
		s.writeJSON(w, http.StatusOK, s.gen.Generate(mode, &seed))
	case req.Suggest && s.suggester != nil:
		p, _ := suggest.SeededPalette(r.Context(), s.suggester, s.gen, mode, s.logger)
		s.writeJSON(w, http.StatusOK, p)
	default:
		s.writeJSON(w, http.StatusOK, s.gen.Generate(mode, nil))
	}
}

func (s *Server) suggestSeed(w http.ResponseWriter, r *http.Request) {
	if s.suggester == nil {
		s.writeError(w, http.StatusServiceUnavailable, "AI suggestions are not configured")
		return
	}
	suggestion, err := s.suggester.Suggest(r.Context())
	if err != nil {
		s.logger.Error("suggestion failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to generate suggestion")
		return
	}
	s.writeJSON(w, http.StatusOK, suggestion)
}

func (s *Server) annotateSVG(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxSVGBytes))
	if err != nil {
		if bodyTooLarge(err) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "SVG document too large")
			return
		}
		s.writeError(w, http.StatusBadRequest, "Failed to read SVG document")
		return
	}
	body, err = compression.Decompress(body, "", s.maxSVGBytes)
	if err != nil {
		if errors.Is(err, security.ErrSizeLimit) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "SVG document too large")
			return
		}
		s.writeError(w, http.StatusBadRequest, "Failed to unpack SVG document")
		return
	}
	if len(body) == 0 {
		s.writeError(w, http.StatusBadRequest, "SVG document is empty")
		return
	}

	doc := string(body)
	slots := svg.Slots(doc)
	parts := make([]string, len(slots))
	for i, slot := range slots {
		parts[i] = strconv.Itoa(slot)
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set(HeaderFillSlots, strings.Join(parts, ","))
	_, _ = io.WriteString(w, svg.Annotate(doc))
}

func (s *Server) guided(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, colour.GuidedSteps())
}

func (s *Server) respondValidation(w http.ResponseWriter, err error) {
	var fe *fieldError
	if errors.As(err, &fe) {
		s.writeFieldError(w, fe.Field, fe.Message)
		return
	}
	s.writeError(w, http.StatusBadRequest, err.Error())
}

func (s *Server) respondStoreError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "Palette not found")
		return
	}
	s.logger.Error(strings.ToLower(message), "error", err)
	s.writeError(w, http.StatusInternalServerError, message)
}

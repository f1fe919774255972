// Package store persists saved palettes.
package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jmylchreest/chromascale/internal/colour"
)

// DefaultName is used when a palette is saved without a name.
const DefaultName = "Untitled Palette"

var (
	// ErrNotFound is returned when a palette id does not exist.
	ErrNotFound = errors.New("palette not found")
	// ErrInvalidRecord is returned when a palette fails validation before insert.
	ErrInvalidRecord = errors.New("invalid palette record")
)

// Record is a saved palette snapshot.
type Record struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Hue        int         `json:"hue"`
	Saturation int         `json:"saturation"`
	Colours    []string    `json:"colors"`
	Mode       colour.Mode `json:"mode"`
	Hues       []int       `json:"hues,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// NewRecord is the insertable part of a Record.
type NewRecord struct {
	Name       string      `json:"name"`
	Hue        int         `json:"hue"`
	Saturation int         `json:"saturation"`
	Colours    []string    `json:"colors"`
	Mode       colour.Mode `json:"mode"`
	Hues       []int       `json:"hues,omitempty"`
}

// Store is implemented by palette persistence backends.
type Store interface {
	// Create saves a palette and returns it with its id and timestamp set.
	Create(ctx context.Context, rec NewRecord) (Record, error)
	// List returns all palettes, newest first.
	List(ctx context.Context) ([]Record, error)
	// Get returns one palette or ErrNotFound.
	Get(ctx context.Context, id int64) (Record, error)
	// Delete removes one palette or returns ErrNotFound.
	Delete(ctx context.Context, id int64) error
	// Close releases backend resources.
	Close() error
}

// FromPalette converts a generated palette into an insertable record. Hue
// values are rounded to whole degrees.
func FromPalette(name string, p colour.Palette) NewRecord {
	rec := NewRecord{
		Name:       name,
		Hue:        int(math.Round(p.Hue)),
		Saturation: p.Saturation,
		Colours:    append([]string(nil), p.Colours...),
		Mode:       p.Mode,
	}
	if len(p.Hues) > 0 {
		rec.Hues = make([]int, len(p.Hues))
		for i, h := range p.Hues {
			rec.Hues[i] = int(math.Round(h))
		}
	}
	return rec
}

// Palette converts a saved record back into a palette value.
func (r Record) Palette() colour.Palette {
	p := colour.Palette{
		Hue:        float64(r.Hue),
		Saturation: r.Saturation,
		Mode:       r.Mode,
		Colours:    append([]string(nil), r.Colours...),
	}
	if len(r.Hues) > 0 {
		p.Hues = make([]float64, len(r.Hues))
		for i, h := range r.Hues {
			p.Hues[i] = float64(h)
		}
	}
	return p
}

// normalise applies defaults and validates rec, returning the cleaned copy.
func normalise(rec NewRecord) (NewRecord, error) {
	rec.Name = strings.TrimSpace(rec.Name)
	if rec.Name == "" {
		rec.Name = DefaultName
	}
	if _, err := colour.ParseMode(string(rec.Mode)); err != nil {
		return NewRecord{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if len(rec.Colours) != colour.SlotCount {
		return NewRecord{}, fmt.Errorf("%w: %d colors, want %d", ErrInvalidRecord, len(rec.Colours), colour.SlotCount)
	}
	if len(rec.Hues) > 0 && len(rec.Hues) != colour.SlotCount {
		return NewRecord{}, fmt.Errorf("%w: %d hues, want %d", ErrInvalidRecord, len(rec.Hues), colour.SlotCount)
	}
	colours := make([]string, len(rec.Colours))
	for i, c := range rec.Colours {
		norm, err := colour.NormaliseHex(c)
		if err != nil {
			return NewRecord{}, fmt.Errorf("%w: colors[%d]: %w", ErrInvalidRecord, i, err)
		}
		colours[i] = norm
	}
	rec.Colours = colours
	rec.Hues = append([]int(nil), rec.Hues...)
	return rec, nil
}

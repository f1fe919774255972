// Package suggest asks an AI text-generation service for a base hue and
// saturation to seed palette generation.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/chromascale/internal/colour"
)

var (
	// ErrNoResponse is returned when the service answers without any text.
	ErrNoResponse = errors.New("no response from AI")
	// ErrInvalidResponse is returned when the answer is not {"hue": n, "saturation": n}.
	ErrInvalidResponse = errors.New("invalid AI response format")
	// ErrDisabled is returned by Disabled.
	ErrDisabled = errors.New("AI suggestions are not configured")
)

// Suggestion is a suggested base hue (degrees) and saturation (percent).
type Suggestion struct {
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
}

// Suggester produces a Suggestion.
type Suggester interface {
	Suggest(ctx context.Context) (Suggestion, error)
}

// Seed converts the suggestion into a generator seed: hue wrapped into
// [0, 360), saturation rounded and clamped to [0, 100].
func (s Suggestion) Seed() colour.Seed {
	hue := math.Mod(math.Mod(s.Hue, 360)+360, 360)
	sat := math.Round(s.Saturation)
	sat = math.Max(0, math.Min(100, sat))
	return colour.Seed{Hue: hue, Saturation: int(sat)}
}

// ParseSuggestion decodes the service's JSON answer. Markdown code fences
// around the object are tolerated; both fields must be JSON numbers.
func ParseSuggestion(text string) (Suggestion, error) {
	body := bytes.TrimSpace([]byte(text))
	if bytes.HasPrefix(body, []byte("```")) {
		body = bytes.TrimPrefix(body, []byte("```json"))
		body = bytes.TrimPrefix(body, []byte("```"))
		body = bytes.TrimSuffix(bytes.TrimSpace(body), []byte("```"))
	}

	var raw struct {
		Hue        *float64 `json:"hue"`
		Saturation *float64 `json:"saturation"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return Suggestion{}, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	if raw.Hue == nil || raw.Saturation == nil {
		return Suggestion{}, fmt.Errorf("%w: hue and saturation are required", ErrInvalidResponse)
	}
	return Suggestion{Hue: *raw.Hue, Saturation: *raw.Saturation}, nil
}

// Disabled is a Suggester that always fails with ErrDisabled.
type Disabled struct{}

// Suggest implements Suggester.
func (Disabled) Suggest(context.Context) (Suggestion, error) {
	return Suggestion{}, ErrDisabled
}

// Static is a Suggester that always returns the same suggestion.
type Static Suggestion

// Suggest implements Suggester.
func (s Static) Suggest(context.Context) (Suggestion, error) {
	return Suggestion(s), nil
}

// SeededPalette asks s for a seed and generates a palette from it. When the
// suggestion fails the palette falls back to the unseeded random path; the
// returned bool reports whether the suggestion was used.
func SeededPalette(ctx context.Context, s Suggester, gen *colour.Generator, mode colour.Mode, logger hclog.Logger) (colour.Palette, bool) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	suggestion, err := s.Suggest(ctx)
	if err != nil {
		logger.Warn("suggestion failed, using random palette", "error", err)
		return gen.Generate(mode, nil), false
	}

	seed := suggestion.Seed()
	logger.Debug("using suggested seed", "hue", seed.Hue, "saturation", seed.Saturation)
	return gen.Generate(mode, &seed), true
}

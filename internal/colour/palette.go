package colour

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
)

// Mode selects how hue varies across the slots of a generated palette.
type Mode string

const (
	// ModeCohesive holds the hue constant across all slots.
	ModeCohesive Mode = "cohesive"
	// ModeVibrant drifts the hue linearly across slots.
	ModeVibrant Mode = "vibrant"
)

// ValidModes returns the supported palette modes.
func ValidModes() []Mode {
	return []Mode{ModeCohesive, ModeVibrant}
}

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	mode := Mode(s)
	if slices.Contains(ValidModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("invalid palette mode: %s (valid: cohesive, vibrant)", s)
}

// Generation bounds. Lightness and saturation are percentages, hue steps degrees.
const (
	SlotCount = 6

	SaturationMin  = 40
	SaturationSpan = 40 // saturation is drawn from [40, 79]

	DarkestMin  = 4
	DarkestMax  = 8
	LightestMin = 72
	LightestMax = 82

	HueStepMin  = 10.0
	HueStepSpan = 15.0 // vibrant hue step is drawn from [10, 25)

	// Seeded generation uses the midpoints of the lightness bounds.
	SeededDarkest  = 6
	SeededLightest = 77
)

var (
	// ErrSlotOutOfRange is returned when a slot index is not in [0, SlotCount).
	ErrSlotOutOfRange = errors.New("slot out of range")
	// ErrInvalidPalette is returned by Validate for malformed palettes.
	ErrInvalidPalette = errors.New("invalid palette")
)

// Palette is a generated set of six graduated colours. Treat it as a value:
// edits go through WithColour, which returns a copy.
type Palette struct {
	Hue        float64   `json:"hue"`
	Saturation int       `json:"saturation"`
	Mode       Mode      `json:"mode"`
	Colours    []string  `json:"colors"`
	Hues       []float64 `json:"hues,omitempty"`
}

// Seed is an externally supplied base hue and saturation.
type Seed struct {
	Hue        float64 `json:"hue"`
	Saturation int     `json:"saturation"`
}

// RandomSource returns a pseudo-random number in [0, 1).
type RandomSource func() float64

// Generator produces palettes from a random source.
type Generator struct {
	random RandomSource
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithRandomSource replaces the default random source. Tests use this to pin output.
func WithRandomSource(r RandomSource) GeneratorOption {
	return func(g *Generator) {
		if r != nil {
			g.random = r
		}
	}
}

// NewGenerator creates a Generator backed by math/rand/v2 unless overridden.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{random: rand.Float64}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var defaultGenerator = NewGenerator()

// Generate produces a palette with the default generator.
func Generate(mode Mode, seed *Seed) Palette {
	return defaultGenerator.Generate(mode, seed)
}

// Generate produces a palette. With a nil seed the base hue, saturation and
// lightness bounds are drawn at random; with a seed the hue and saturation are
// taken from it and the lightness bounds are fixed at their midpoints.
func (g *Generator) Generate(mode Mode, seed *Seed) Palette {
	var (
		baseHue    float64
		saturation int
		darkest    int
		lightest   int
	)

	if seed == nil {
		baseHue = math.Floor(g.random() * 360)
		saturation = g.intn(SaturationSpan) + SaturationMin
		darkest = g.intn(DarkestMax-DarkestMin+1) + DarkestMin
		lightest = g.intn(LightestMax-LightestMin+1) + LightestMin
	} else {
		baseHue = seed.Hue
		saturation = seed.Saturation
		darkest = SeededDarkest
		lightest = SeededLightest
	}

	lightnessStep := float64(lightest-darkest) / (SlotCount - 1)

	hueStep := 0.0
	if mode == ModeVibrant {
		hueStep = g.random()*HueStepSpan + HueStepMin
	}

	p := Palette{
		Hue:        baseHue,
		Saturation: saturation,
		Mode:       mode,
		Colours:    make([]string, SlotCount),
		Hues:       make([]float64, SlotCount),
	}
	for i := range SlotCount {
		h := math.Mod(baseHue+hueStep*float64(i), 360)
		l := float64(darkest) + lightnessStep*float64(i)
		p.Hues[i] = h
		p.Colours[i] = HSLToHex(h, float64(saturation), l)
	}
	return p
}

// intn draws an integer in [0, n) the same way the palette bounds are defined:
// floor(random * n).
func (g *Generator) intn(n int) int {
	return int(math.Floor(g.random() * float64(n)))
}

// WithColour returns a copy of the palette with one slot replaced.
func (p Palette) WithColour(slot int, hex string) (Palette, error) {
	if slot < 0 || slot >= len(p.Colours) {
		return Palette{}, fmt.Errorf("%w: %d (palette has %d slots)", ErrSlotOutOfRange, slot, len(p.Colours))
	}
	norm, err := NormaliseHex(hex)
	if err != nil {
		return Palette{}, err
	}

	out := p
	out.Colours = slices.Clone(p.Colours)
	out.Hues = slices.Clone(p.Hues)
	out.Colours[slot] = norm
	return out, nil
}

// Validate checks the shape of a palette that came from outside the generator.
func (p Palette) Validate() error {
	if _, err := ParseMode(string(p.Mode)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPalette, err)
	}
	if len(p.Colours) != SlotCount {
		return fmt.Errorf("%w: expected %d colours, got %d", ErrInvalidPalette, SlotCount, len(p.Colours))
	}
	for i, c := range p.Colours {
		if _, err := ParseHex(c); err != nil {
			return fmt.Errorf("%w: slot %d: %w", ErrInvalidPalette, i, err)
		}
	}
	if len(p.Hues) != 0 && len(p.Hues) != SlotCount {
		return fmt.Errorf("%w: expected %d hues, got %d", ErrInvalidPalette, SlotCount, len(p.Hues))
	}
	return nil
}

// RGB returns the palette colours parsed into RGB values. Unparseable entries
// come back as black.
func (p Palette) RGB() []RGB {
	out := make([]RGB, len(p.Colours))
	for i, c := range p.Colours {
		out[i], _ = ParseHex(c)
	}
	return out
}

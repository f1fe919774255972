package colour

import "fmt"

// White is the placeholder colour for slots that have not been chosen yet.
const White = "#FFFFFF"

// GuidedStep is one step of the guided palette builder: a lightness role with
// a curated set of swatches to pick from.
type GuidedStep struct {
	Level          int      `json:"level"`
	Role           string   `json:"role"`
	LightnessRange string   `json:"lightnessRange"`
	Description    string   `json:"description"`
	Swatches       []string `json:"swatches"`
}

var guidedSteps = []GuidedStep{
	{
		Level:          1,
		Role:           "Deep Base",
		LightnessRange: "10-15%",
		Description:    "Start with your darkest tone. This creates depth and anchors your design.",
		Swatches:       []string{"#0D1B2A", "#1A1A1D", "#1B1B1B", "#0B090A", "#2D1E2F", "#1B263B", "#242423", "#101419"},
	},
	{
		Level:          2,
		Role:           "Shadow",
		LightnessRange: "25-35%",
		Description:    "Add shadow depth. This colour creates dimension between your darkest and mid-tones.",
		Swatches:       []string{"#3E5C76", "#4A4E69", "#540B0E", "#335C67", "#582F0E", "#415A77", "#432818", "#386641"},
	},
	{
		Level:          3,
		Role:           "Mid-Tone",
		LightnessRange: "45-55%",
		Description:    "Your mid-tone bridges dark and light. It's often the most prominent colour.",
		Swatches:       []string{"#778DA9", "#9A8C98", "#9E2A2B", "#E09F3E", "#7F5539", "#6A994E", "#5E60CE", "#BC4749"},
	},
	{
		Level:          4,
		Role:           "Light Mid",
		LightnessRange: "60-70%",
		Description:    "A lighter accent that adds variety without being too bright.",
		Swatches:       []string{"#A2D2FF", "#C9ADA7", "#E07A5F", "#F4A261", "#B79492", "#A7C957", "#90E0EF", "#FFB703"},
	},
	{
		Level:          5,
		Role:           "Soft Tint",
		LightnessRange: "75-85%",
		Description:    "Soft, light tones that provide breathing room in your palette.",
		Swatches:       []string{"#BDE0FE", "#F2E9E4", "#F2CC8F", "#E9C46A", "#DDBB99", "#DDE5B6", "#CAF0F8", "#FFD60A"},
	},
	{
		Level:          6,
		Role:           "Highlight",
		LightnessRange: "90-95%",
		Description:    "Your lightest tone. Use for highlights and areas that need to pop.",
		Swatches:       []string{"#EDF6FF", "#F8F9FA", "#FEFAE0", "#FFF3B0", "#FAF9F6", "#F1F8E9", "#E0F7FA", "#FFFDE7"},
	},
}

// GuidedSteps returns the six guided steps, darkest first.
func GuidedSteps() []GuidedStep {
	out := make([]GuidedStep, len(guidedSteps))
	for i, s := range guidedSteps {
		s.Swatches = append([]string(nil), s.Swatches...)
		out[i] = s
	}
	return out
}

// GuidedPalette builds a cohesive-mode palette from hand-picked colours, one
// per step. Empty choices become White. Hue and saturation are taken from the
// first chosen colour.
func GuidedPalette(choices [SlotCount]string) (Palette, error) {
	p := Palette{
		Mode:    ModeCohesive,
		Colours: make([]string, SlotCount),
	}

	seeded := false
	for i, c := range choices {
		if c == "" {
			p.Colours[i] = White
			continue
		}
		rgb, err := ParseHex(c)
		if err != nil {
			return Palette{}, fmt.Errorf("step %d: %w", i+1, err)
		}
		p.Colours[i] = rgb.Hex()
		if !seeded {
			h, s, _ := rgb.ToHSL()
			p.Hue = h
			p.Saturation = int(roundHalfUp(s))
			seeded = true
		}
	}
	return p, nil
}

// HasWhite reports whether any slot is pure white. Renderers outline the
// illustration in that case so white fills remain visible.
func (p Palette) HasWhite() bool {
	for _, c := range p.Colours {
		if rgb, err := ParseHex(c); err == nil && rgb == (RGB{R: 255, G: 255, B: 255}) {
			return true
		}
	}
	return false
}

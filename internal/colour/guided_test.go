package colour

import (
	"strings"
	"testing"
)

func TestGuidedSteps(t *testing.T) {
	steps := GuidedSteps()
	if len(steps) != SlotCount {
		t.Fatalf("len(GuidedSteps()) = %d, want %d", len(steps), SlotCount)
	}
	for i, s := range steps {
		if s.Level != i+1 {
			t.Errorf("step %d has level %d", i, s.Level)
		}
		if len(s.Swatches) != 8 {
			t.Errorf("step %d has %d swatches, want 8", s.Level, len(s.Swatches))
		}
		for _, sw := range s.Swatches {
			if _, err := ParseHex(sw); err != nil {
				t.Errorf("step %d swatch %q: %v", s.Level, sw, err)
			}
		}
	}

	// Callers get a copy.
	steps[0].Swatches[0] = "#000000"
	if GuidedSteps()[0].Swatches[0] == "#000000" {
		t.Error("GuidedSteps() returned shared swatch slice")
	}
}

func TestGuidedPalette(t *testing.T) {
	var choices [SlotCount]string
	choices[0] = "#0d1b2a"
	choices[2] = "#778DA9"

	p, err := GuidedPalette(choices)
	if err != nil {
		t.Fatalf("GuidedPalette() error = %v", err)
	}
	if p.Colours[0] != "#0D1B2A" {
		t.Errorf("Colours[0] = %s, want #0D1B2A", p.Colours[0])
	}
	if p.Colours[1] != White {
		t.Errorf("unset slot = %s, want %s", p.Colours[1], White)
	}
	if !p.HasWhite() {
		t.Error("HasWhite() = false for partially chosen palette")
	}
	if p.Hue < 200 || p.Hue > 220 {
		t.Errorf("Hue = %v, want the hue of #0D1B2A (~210)", p.Hue)
	}

	choices[3] = "not-a-colour"
	if _, err := GuidedPalette(choices); err == nil || !strings.Contains(err.Error(), "step 4") {
		t.Errorf("GuidedPalette() error = %v, want step 4 failure", err)
	}
}

func TestPalettePreview(t *testing.T) {
	p := Generate(ModeCohesive, &Seed{Hue: 210, Saturation: 60})
	plain := p.Preview(false)
	if strings.Contains(plain, "\033[") {
		t.Error("Preview(false) contains ANSI escapes")
	}
	if got := strings.Count(plain, "\n"); got != SlotCount {
		t.Errorf("Preview(false) has %d lines, want %d", got, SlotCount)
	}
	for _, c := range p.Colours {
		if !strings.Contains(plain, c) {
			t.Errorf("Preview(false) missing %s", c)
		}
	}
	if !strings.Contains(p.Preview(true), "\033[48;2;") {
		t.Error("Preview(true) missing background escape")
	}
}

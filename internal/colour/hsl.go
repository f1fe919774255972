// Package colour provides HSL colour conversion and palette generation.
package colour

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidHex is returned when a string is not a #RRGGBB colour.
var ErrInvalidHex = errors.New("invalid hex colour")

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the colour as an uppercase hex string (e.g., "#1A2B3C").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

// String returns the RGB colour in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// HSLToHex converts a hue in degrees and saturation/lightness percentages to
// an uppercase "#RRGGBB" string. Any real hue is accepted and wrapped into
// [0, 360). Out-of-range saturation or lightness still yields a defined result.
func HSLToHex(hue, saturation, lightness float64) string {
	return HSLToRGB(hue, saturation, lightness).Hex()
}

// HSLToRGB is HSLToHex without the final formatting step.
func HSLToRGB(hue, saturation, lightness float64) RGB {
	h := math.Mod(math.Mod(hue, 360)+360, 360)
	s := saturation / 100
	l := lightness / 100
	a := s * math.Min(l, 1-l)

	channel := func(n float64) uint8 {
		k := math.Mod(n+h/30, 12)
		c := l - a*math.Max(math.Min(math.Min(k-3, 9-k), 1), -1)
		return clampChannel(roundHalfUp(c * 255))
	}

	return RGB{R: channel(0), G: channel(8), B: channel(4)}
}

// roundHalfUp rounds halves toward positive infinity so that 127.5 becomes 128.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func clampChannel(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// ParseHex parses a "#RRGGBB" string (case-insensitive, leading # optional).
func ParseHex(s string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// NormaliseHex validates s and returns it in canonical "#RRGGBB" form.
func NormaliseHex(s string) (string, error) {
	rgb, err := ParseHex(s)
	if err != nil {
		return "", err
	}
	return rgb.Hex(), nil
}

// ToHSL converts RGB to hue (0-360), saturation (0-100) and lightness (0-100).
func (rgb RGB) ToHSL() (h, s, l float64) {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	l = (maxVal + minVal) / 2.0

	if delta == 0 {
		return 0, 0, l * 100
	}

	if l < 0.5 {
		s = delta / (maxVal + minVal)
	} else {
		s = delta / (2.0 - maxVal - minVal)
	}

	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	case b:
		h = (r-g)/delta + 4
	}

	return h * 60, s * 100, l * 100
}

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
func (rgb RGB) Luminance() float64 {
	return 0.2126*gammaCorrect(float64(rgb.R)/255) +
		0.7152*gammaCorrect(float64(rgb.G)/255) +
		0.0722*gammaCorrect(float64(rgb.B)/255)
}

func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

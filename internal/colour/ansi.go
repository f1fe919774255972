package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// Swatch returns a solid ANSI truecolour block for c.
// Width specifies how many characters wide the block should be.
func Swatch(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	return fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix) +
		strings.Repeat(" ", width) + ansiReset
}

// SwatchWithText returns a block with text centred on it. The text colour is
// black or white depending on the luminance of c.
func SwatchWithText(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	var fg uint8 = 255
	if c.Luminance() > 0.5 {
		fg = 0
	}

	display := text
	if len(text) > width {
		display = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		display = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	return fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix) +
		fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, fg, fg, fg, ansiSuffix) +
		display + ansiReset
}

// Preview renders one line per slot: swatch, slot number, hex and, when
// known, the slot hue. With colour disabled only the text columns are printed.
func (p Palette) Preview(colour bool) string {
	var b strings.Builder
	for i, rgb := range p.RGB() {
		if colour {
			b.WriteString(SwatchWithText(rgb, fmt.Sprintf("%d", i+1), defaultWidth))
			b.WriteString("  ")
		} else {
			fmt.Fprintf(&b, "%d  ", i+1)
		}
		b.WriteString(rgb.Hex())
		if i < len(p.Hues) {
			fmt.Fprintf(&b, "  hue %6.2f", p.Hues[i])
		}
		b.WriteString("\n")
	}
	return b.String()
}

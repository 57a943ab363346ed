package hud

import (
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Font is the HUD font.
var Font tinyfont.Fonter = &proggy.TinySZ8pt7b

// Baseline is the offset from the top of a text line to its baseline.
const Baseline = 10

// TextWidth returns the rendered width of s in pixels.
func TextWidth(s string) int {
	_, outboxWidth := tinyfont.LineWidth(Font, s)
	return int(outboxWidth)
}

// WriteText draws s with its top-left corner at (x, y).
func WriteText(d *Display, x, y int, s string, c color.RGBA) {
	tinyfont.WriteLine(d, Font, int16(x), int16(y+Baseline), s, c)
}

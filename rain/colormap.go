package rain

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/FlowLightGames/CLI-Rain/terminal"
)

// ColorMap holds one shade per glyph index, dim (far) to bright (near)
// Computed once; treat as read-only
type ColorMap []terminal.RGB

// NewColorMap builds a grayscale ramp for n glyphs
// Index i gets shade (i+1)/(n+1) of full scale, so neither end is black or white
// Channels are truncated to the byte, not rounded
func NewColorMap(n int) ColorMap {
	if n <= 0 {
		return ColorMap{}
	}
	out := make(ColorMap, n)
	interval := 1.0 / float64(n+1)
	for i := range out {
		v := float64(i)*interval + interval
		c := colorful.Color{R: v, G: v, B: v}.Clamped()
		out[i] = terminal.RGB{R: uint8(c.R * 255), G: uint8(c.G * 255), B: uint8(c.B * 255)}
	}
	return out
}

// At returns the shade for a glyph index, white when out of range
func (m ColorMap) At(i int) terminal.RGB {
	if i < 0 || i >= len(m) {
		return terminal.RGBWhite
	}
	return m[i]
}

package render

import (
	"fmt"

	"github.com/FlowLightGames/CLI-Rain/rain"
)

// Renderer draws the particle field onto a sink, one full redraw per frame
type Renderer struct {
	sink   Sink
	glyphs []rune
	colors rain.ColorMap
}

// NewRenderer creates a renderer for a glyph ramp
// The color map is computed once here and reused for every frame
func NewRenderer(sink Sink, glyphs []rune) *Renderer {
	return &Renderer{
		sink:   sink,
		glyphs: glyphs,
		colors: rain.NewColorMap(len(glyphs)),
	}
}

// Colors returns the shade ramp used for glyphs
func (r *Renderer) Colors() rain.ColorMap {
	return r.colors
}

// Draw renders one frame of the field
// Positions are truncated, not rounded or clamped; the field is rebuilt on resize instead
func (r *Renderer) Draw(field *rain.Field) error {
	if err := r.sink.Clear(); err != nil {
		return fmt.Errorf("clear: %w", err)
	}

	for _, p := range field.Particles() {
		if !p.Alive {
			continue
		}
		if err := r.sink.MoveTo(int(p.X), int(p.Y)); err != nil {
			return fmt.Errorf("move cursor: %w", err)
		}
		if err := r.sink.Print(r.glyphs[p.Glyph], r.colors.At(p.Glyph)); err != nil {
			return fmt.Errorf("print glyph: %w", err)
		}
	}

	// Park the cursor out of the way
	w, h := field.Size()
	if err := r.sink.MoveTo(w, h); err != nil {
		return fmt.Errorf("park cursor: %w", err)
	}
	if err := r.sink.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

package rain

import (
	"github.com/FlowLightGames/CLI-Rain/vmath"
)

// Simulation owns the current field and rebuilds it on grid resize
// Old particle state is discarded on resize, nothing is carried over
type Simulation struct {
	cfg      Config
	rng      vmath.Rand
	field    *Field
	rebuilds int
}

// NewSimulation validates cfg and creates the initial field
func NewSimulation(width, height int, cfg Config, rng vmath.Rand) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Simulation{
		cfg:   cfg,
		rng:   rng,
		field: NewField(width, height, cfg, rng),
	}, nil
}

// Sync rebuilds the field when the grid differs from the field's dimensions
// Returns true when a rebuild happened
func (s *Simulation) Sync(width, height int) bool {
	if s.field.Matches(width, height) {
		return false
	}
	s.field = NewField(width, height, s.cfg, s.rng)
	s.rebuilds++
	return true
}

// Step advances the current field one tick
func (s *Simulation) Step() {
	s.field.Tick(s.rng)
}

// Field returns the current field
func (s *Simulation) Field() *Field {
	return s.field
}

// Glyph returns the rune for a glyph index
func (s *Simulation) Glyph(i int) rune {
	return s.cfg.Glyphs[i]
}

// Glyphs returns the configured ramp
func (s *Simulation) Glyphs() []rune {
	return s.cfg.Glyphs
}

// Rebuilds returns how many resize rebuilds have happened
func (s *Simulation) Rebuilds() int {
	return s.rebuilds
}

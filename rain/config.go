package rain

import (
	"errors"
	"fmt"

	"github.com/FlowLightGames/CLI-Rain/parameter"
)

// ErrNoGlyphs is returned when the glyph ramp is empty
var ErrNoGlyphs = errors.New("glyph ramp cannot be empty")

// Config holds the particle field tunables
type Config struct {
	Glyphs      []rune  // Ramp sorted far/slow -> near/fast
	Density     float64 // Particles per grid cell
	Count       int     // Fixed particle count; overrides Density when > 0
	SpawnChance float64 // Alive probability at creation
	AliveChance float64 // Alive probability per tick
}

// DefaultConfig returns the compile-time defaults
func DefaultConfig() Config {
	return Config{
		Glyphs:      parameter.RainGlyphs,
		Density:     parameter.RainDensity,
		Count:       parameter.RainCount,
		SpawnChance: parameter.SpawnAliveChance,
		AliveChance: parameter.TickAliveChance,
	}
}

// Validate checks the configuration for validity
func (c Config) Validate() error {
	if len(c.Glyphs) == 0 {
		return ErrNoGlyphs
	}
	if c.Density < 0 {
		return fmt.Errorf("density must be non-negative: got %g", c.Density)
	}
	if c.Count < 0 {
		return fmt.Errorf("count must be non-negative: got %d", c.Count)
	}
	if c.SpawnChance < 0 || c.SpawnChance > 1 {
		return fmt.Errorf("spawn chance out of range (0-1): got %g", c.SpawnChance)
	}
	if c.AliveChance < 0 || c.AliveChance > 1 {
		return fmt.Errorf("alive chance out of range (0-1): got %g", c.AliveChance)
	}
	return nil
}

// particleCount returns the number of particles for a grid
// Density product is truncated, matching a per-cell expectation rounded down
func (c Config) particleCount(width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	if c.Count > 0 {
		return c.Count
	}
	return int(float64(width) * float64(height) * c.Density)
}

package rain

import (
	"math"

	"github.com/FlowLightGames/CLI-Rain/vmath"
)

// Particle is one rain drop
// Glyph is fixed for the particle's lifetime; X is never normalized, Y wraps
type Particle struct {
	X, Y  float64
	Glyph int
	Alive bool
}

// Field owns the particles for one grid size
// Not safe for concurrent use; the render loop is the only owner
type Field struct {
	width, height int
	glyphs        int
	aliveChance   float64
	particles     []Particle
}

// NewField populates a field for the given grid
// Every particle gets a uniform position and glyph; few start alive
func NewField(width, height int, cfg Config, rng vmath.Rand) *Field {
	n := cfg.particleCount(width, height)
	f := &Field{
		width:       width,
		height:      height,
		glyphs:      len(cfg.Glyphs),
		aliveChance: cfg.AliveChance,
		particles:   make([]Particle, n),
	}
	for i := range f.particles {
		p := &f.particles[i]
		p.X, p.Y = f.randomPosition(rng)
		p.Glyph = rng.Intn(f.glyphs)
		p.Alive = vmath.Chance(rng, cfg.SpawnChance)
	}
	return f
}

// Tick advances every particle one step
// A dead->alive flip respawns at a fresh position; anything else falls by the glyph's speed
func (f *Field) Tick(rng vmath.Rand) {
	if f.height <= 0 {
		return
	}
	for i := range f.particles {
		p := &f.particles[i]
		wasAlive := p.Alive
		p.Alive = vmath.Chance(rng, f.aliveChance)

		if !wasAlive && p.Alive {
			p.X, p.Y = f.randomPosition(rng)
			continue
		}
		p.Y = math.Mod(p.Y+f.Speed(p.Glyph), float64(f.height))
	}
}

// Speed returns rows advanced per tick for a glyph index
func (f *Field) Speed(glyph int) float64 {
	if f.glyphs == 0 {
		return 0
	}
	return float64(glyph+1) / float64(f.glyphs)
}

// Matches reports whether the field was built for these dimensions
func (f *Field) Matches(width, height int) bool {
	return f.width == width && f.height == height
}

// Size returns the grid dimensions the field was built for
func (f *Field) Size() (int, int) {
	return f.width, f.height
}

// Len returns the particle count
func (f *Field) Len() int {
	return len(f.particles)
}

// AliveCount returns the number of particles visible this frame
func (f *Field) AliveCount() int {
	n := 0
	for i := range f.particles {
		if f.particles[i].Alive {
			n++
		}
	}
	return n
}

// Particles exposes the backing slice for read-only iteration
func (f *Field) Particles() []Particle {
	return f.particles
}

func (f *Field) randomPosition(rng vmath.Rand) (float64, float64) {
	return vmath.Uniform(rng, float64(f.width)), vmath.Uniform(rng, float64(f.height))
}

package parameter

// RainGlyphs is the glyph ramp, sorted far/slow -> near/fast
// Index determines both speed ((i+1)/len) and shade ((i+1)/(len+1))
var RainGlyphs = []rune{'\'', '!', '|'}

// Particle Field
const (
	// RainDensity is particles per grid cell at field creation
	RainDensity = 0.05

	// RainCount overrides density with a fixed particle count when > 0
	RainCount = 0

	// SpawnAliveChance is the probability a particle starts visible
	SpawnAliveChance = 0.05

	// TickAliveChance is the per-tick probability a particle is visible
	// A false->true flip respawns the particle at a random position
	TickAliveChance = 0.95
)

package vmath

// float64Unit scales the top 53 bits of a 64-bit draw into [0, 1)
const float64Unit = 1.0 / (1 << 53)

// Rand is the random source consumed by the particle simulation
// Implementations need not be safe for concurrent use; the field owns its source
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// FastRand is a xorshift64 generator (13, 17, 5)
type FastRand struct {
	state uint64
}

// NewFastRand creates a generator from seed
// The seed is scrambled first so small seeds don't yield a run of tiny outputs
func NewFastRand(seed uint64) *FastRand {
	state := splitmix64(seed)
	// xorshift has a fixed point at 0
	if state == 0 {
		state = 1
	}
	return &FastRand{state: state}
}

func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}

// Next advances the generator and returns the raw 64-bit state
func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Intn returns a value in [0, n), 0 for n <= 0
func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0, 1)
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) * float64Unit
}

// Chance reports true with probability p
func Chance(r Rand, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float64() < p
}

// Uniform returns a value in [0, max), 0 for max <= 0
func Uniform(r Rand, max float64) float64 {
	if max <= 0 {
		return 0
	}
	v := r.Float64() * max
	// Guard against rounding up to max on large spans
	if v >= max {
		return 0
	}
	return v
}

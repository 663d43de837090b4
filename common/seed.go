package common

// SeededRNG implements a Mulberry32 seeded pseudo-random number generator.
// Particle layouts and fallback jitter are drawn from it so a given seed always
// produces the same celebration.
type SeededRNG struct {
	state       uint32
	initialSeed uint32
}

// NewSeededRNG creates a new seeded random number generator.
func NewSeededRNG(seed uint32) *SeededRNG {
	return &SeededRNG{
		state:       seed,
		initialSeed: seed,
	}
}

// SetSeed sets a new seed and resets the generator state.
func (r *SeededRNG) SetSeed(seed uint32) {
	r.state = seed
	r.initialSeed = seed
}

// Reset rewinds the generator to its initial seed.
func (r *SeededRNG) Reset() {
	r.state = r.initialSeed
}

// Seed returns the seed the generator was created or last reseeded with.
func (r *SeededRNG) Seed() uint32 {
	return r.initialSeed
}

// Random returns the next value in [0, 1).
func (r *SeededRNG) Random() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// RandomInt returns an integer in [min, max).
func (r *SeededRNG) RandomInt(min, max int) int {
	if max <= min {
		return min
	}
	return int(r.Random()*float64(max-min)) + min
}

// RandomFloat returns a float in [min, max).
func (r *SeededRNG) RandomFloat(min, max float64) float64 {
	return r.Random()*(max-min) + min
}

// Spread returns a float in [-amount, amount).
func (r *SeededRNG) Spread(amount float64) float64 {
	return r.RandomFloat(-amount, amount)
}

// Pick returns a random element of choices, or "" when choices is empty.
func Pick(r *SeededRNG, choices []string) string {
	if len(choices) == 0 {
		return ""
	}
	return choices[r.RandomInt(0, len(choices))]
}

// MixSeed folds a counter into a base seed so successive populations differ
// while staying reproducible.
func MixSeed(baseSeed uint32, n int) uint32 {
	seed := baseSeed ^ (uint32(n) * 2654435761)
	seed = (seed ^ (seed >> 16)) * 0x85ebca6b
	seed = (seed ^ (seed >> 13)) * 0xc2b2ae35
	return seed ^ (seed >> 16)
}

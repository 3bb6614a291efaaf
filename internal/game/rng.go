package game

// RNG is a seeded 32-bit mixing generator. The same seed always yields the
// same sequence, with integer-only state so the stream is portable to any
// runtime a client might regenerate layouts in.
type RNG struct {
	state uint32
}

func NewRNG(seed uint32) *RNG {
	return &RNG{state: seed}
}

// Float returns the next value in [0, 1).
func (r *RNG) Float() float64 {
	r.state += 0x6D2B79F5
	z := r.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	z ^= z >> 14
	return float64(z) / 4294967296.0
}

// Range returns the next value in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	return lo + r.Float()*(hi-lo)
}

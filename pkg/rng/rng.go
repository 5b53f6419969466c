// Package rng provides the seeded draw stream that makes generation
// reproducible. The stream is created once per run and passed explicitly to
// every component that consumes randomness; the order of draws is a
// correctness contract, so callers must never reorder or skip calls.
package rng

import "math/rand"

// Stream is a sequentially consumed pseudo-random source. It is not safe
// for concurrent use; generation is single-threaded by design of the
// draw-order contract.
type Stream struct {
	r *rand.Rand
}

// New creates a stream seeded with the given value. Two streams with the
// same seed produce identical draw sequences.
func New(seed int64) *Stream {
	return &Stream{r: rand.New(rand.NewSource(seed))}
}

// Float returns the next draw in [0, 1).
func (s *Stream) Float() float64 {
	return s.r.Float64()
}

// Uniform returns the next draw in [lo, hi).
func (s *Stream) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.r.Float64()
}

// Pick returns a uniformly chosen element of options. Consumes one draw.
func (s *Stream) Pick(options []string) string {
	return options[s.r.Intn(len(options))]
}

// Gauss returns the next normally distributed draw with the given mean and
// standard deviation.
func (s *Stream) Gauss(mean, sigma float64) float64 {
	return mean + sigma*s.r.NormFloat64()
}

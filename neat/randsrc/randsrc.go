// Package randsrc provides the single, seeded source of randomness the
// NEAT core draws from. Per spec, fitness evaluation never draws random
// numbers, so a single process-wide generator used only on the main
// thread is sufficient; no per-goroutine streams are required.
package randsrc

import "math/rand"

// Source is a seeded deterministic random source.
type Source struct {
	rng   *rand.Rand
	sigma float64
}

// New creates a Source seeded with the given value.
func New(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed)), sigma: 1.0}
}

// SetSigma sets the standard deviation used by Gaussian; the generation
// driver calls it at the start of every generation.
func (s *Source) SetSigma(sigma float64) { s.sigma = sigma }

// Sigma returns the standard deviation currently in effect.
func (s *Source) Sigma() float64 { return s.sigma }

// Gaussian draws from a zero-mean Gaussian with the current sigma.
func (s *Source) Gaussian() float64 { return s.rng.NormFloat64() * s.sigma }

// Bernoulli draws a boolean outcome true with probability p.
func (s *Source) Bernoulli(p float64) bool { return s.rng.Float64() < p }

// Intn returns a uniform int in [0,n).
func (s *Source) Intn(n int) int { return s.rng.Intn(n) }

// Float64 returns a uniform float64 in [0,1).
func (s *Source) Float64() float64 { return s.rng.Float64() }

// Uint64 returns a uniform random uint64, used to mint genome IDs.
func (s *Source) Uint64() uint64 { return s.rng.Uint64() }

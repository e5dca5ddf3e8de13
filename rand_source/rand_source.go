// Package rand_source separates the app's two randomness regimes: the
// interactive modes draw from a non-reproducible source, while daily
// challenges draw from a seeded generator whose sequence must be bit-exact
// for replay verification. Both satisfy Source, and each consumer receives
// its own injected instance so seeding one can never affect the other.
package rand_source

import (
	"math/rand"
	"time"
)

// Source is the minimal randomness contract consumed by generation and play.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n). n must be > 0.
	Intn(n int) int
}

// NewInteractive returns a time-seeded source for the Playground, Random,
// and Comparison modes. Its sequences are intentionally not reproducible.
func NewInteractive() Source {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// DateSeed folds a YYYY-MM-DD date string into a 32-bit seed:
// h = h*31 + char, starting from 0, mod 2^32.
func DateSeed(date string) uint32 {
	var h uint32
	for _, c := range date {
		h = h*31 + uint32(c)
	}
	return h
}

// Mulberry32 is a 32-bit PRNG with a single word of state. The exact update
// and output mixing below are load-bearing: stored daily-challenge replays
// are validated against grids regenerated from the same seed, so the
// sequence must reproduce bit-for-bit.
type Mulberry32 struct {
	state uint32
}

func NewMulberry32(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// Uint32 advances the generator and returns the next 32-bit output.
func (m *Mulberry32) Uint32() uint32 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 normalizes the next output to [0, 1) by dividing by 2^32.
func (m *Mulberry32) Float64() float64 {
	return float64(m.Uint32()) / (1 << 32)
}

// Intn returns a value in [0, n) derived from the next Float64.
func (m *Mulberry32) Intn(n int) int {
	return int(m.Float64() * float64(n))
}

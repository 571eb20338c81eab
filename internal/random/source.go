package random

import (
	"fmt"
	"math/rand"
	"sync"
)

// Source is the single randomness seam used by game rules. Every uniform or
// weighted draw goes through it so outcomes are reproducible under test.
type Source interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) int
}

// Seeded is a Source backed by math/rand and safe for concurrent use.
type Seeded struct {
	mu   sync.Mutex
	rng  *rand.Rand
	seed int64
}

// NewSeeded returns a Source seeded with seed. A zero seed draws one from
// crypto/rand via NewSeed.
func NewSeeded(seed int64) (*Seeded, error) {
	if seed == 0 {
		generated, err := NewSeed()
		if err != nil {
			return nil, fmt.Errorf("seed rng: %w", err)
		}
		seed = generated
	}
	return &Seeded{rng: rand.New(rand.NewSource(seed)), seed: seed}, nil
}

// Seed returns the seed the generator was created with.
func (s *Seeded) Seed() int64 {
	return s.seed
}

// Float64 returns a value in [0.0, 1.0).
func (s *Seeded) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Intn returns a value in [0, n).
func (s *Seeded) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Pick returns a uniformly chosen element of values and false when values is
// empty.
func Pick[T any](src Source, values []T) (T, bool) {
	var zero T
	if len(values) == 0 {
		return zero, false
	}
	return values[src.Intn(len(values))], true
}

// Weighted picks an index from weights, drawing uniformly over the cumulative
// weight range. Negative weights count as zero. It returns false when every
// weight is zero.
func Weighted(src Source, weights []int) (int, bool) {
	total := 0
	for _, weight := range weights {
		if weight > 0 {
			total += weight
		}
	}
	if total <= 0 {
		return 0, false
	}
	roll := src.Intn(total)
	cumulative := 0
	for i, weight := range weights {
		if weight <= 0 {
			continue
		}
		cumulative += weight
		if roll < cumulative {
			return i, true
		}
	}
	return 0, false
}

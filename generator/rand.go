package generator

import (
	"math/rand"
	"sync"
)

// Source produces the random draws the generators consume.
type Source interface {
	// Float64 returns a draw from [0, 1).
	Float64() float64
	// UniformFloat returns a draw from [low, high).
	UniformFloat(low, high float64) float64
	// UniformInt returns a draw from [low, high], inclusive on both ends.
	UniformInt(low, high int) int
	// Pick returns one of items, chosen uniformly.
	Pick(items []string) string
}

// RandSource implements Source on a private seedable generator. Every method
// takes the lock because concurrent generation requests share one source.
type RandSource struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewRandSource creates a source seeded with the given value.
func NewRandSource(seed int64) *RandSource {
	return &RandSource{rand: rand.New(rand.NewSource(seed))}
}

func (s *RandSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rand.Float64()
}

func (s *RandSource) UniformFloat(low, high float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return low + s.rand.Float64()*(high-low)
}

func (s *RandSource) UniformInt(low, high int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return low + s.rand.Intn(high-low+1)
}

func (s *RandSource) Pick(items []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return items[s.rand.Intn(len(items))]
}

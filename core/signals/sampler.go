package signals

import (
	"math/rand"
	"sync"
	"time"
)

// Sampler draws integers uniformly from the inclusive range [min, max].
type Sampler interface {
	Between(min, max int) int
}

// RandSampler is a goroutine safe Sampler backed by math/rand.
type RandSampler struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewRandSampler returns a sampler seeded with seed. A zero seed uses the
// current time.
func NewRandSampler(seed int64) *RandSampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandSampler{rand: rand.New(rand.NewSource(seed))}
}

func (s *RandSampler) Between(min, max int) int {
	if max <= min {
		return min
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rand.Intn(max-min+1)
}

// Pick returns a random element of items, or the zero value when empty.
func Pick[T any](s Sampler, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[s.Between(0, len(items)-1)]
}

// SamplerFunc adapts a function to the Sampler interface.
type SamplerFunc func(min, max int) int

func (f SamplerFunc) Between(min, max int) int { return f(min, max) }

// MinSampler always returns the lower bound.
var MinSampler Sampler = SamplerFunc(func(min, _ int) int { return min })

// MaxSampler always returns the upper bound.
var MaxSampler Sampler = SamplerFunc(func(_, max int) int { return max })

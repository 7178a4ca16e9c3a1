package chain

import (
	"math/rand"
	"sync"
)

// Rand is the uniform randomness source for seed and candidate picks.
// Injected so builds are reproducible under test.
type Rand interface {
	Intn(n int) int
}

// lockedRand wraps a *rand.Rand with a mutex so a single source can be
// shared across concurrent chain builds.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewLockedRand returns a concurrency-safe Rand seeded with seed.
func NewLockedRand(seed int64) Rand {
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

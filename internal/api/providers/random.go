package providers

import (
	"math/rand"
	"sync"
	"time"
)

// RandSource is the randomness the synthetic providers draw from.
type RandSource interface {
	Intn(n int) int
	Float64() float64
}

type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandSource returns a source safe for concurrent use. A zero seed means time-seeded.
func NewRandSource(seed int64) RandSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{rnd: rand.New(rand.NewSource(seed))}
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Float64()
}

// randInt returns a value in [lo, hi], both inclusive.
func randInt(rs RandSource, lo, hi int) int {
	return lo + rs.Intn(hi-lo+1)
}

func choice(rs RandSource, items []string) string {
	return items[rs.Intn(len(items))]
}

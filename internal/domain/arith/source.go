package arith

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
	"time"
)

// Source is the randomness provider for operand draws.
type Source interface {
	// IntRange returns a uniformly distributed int in the closed range [min, max].
	// If max < min, it returns min.
	IntRange(min, max int) int
}

// lockedSource is a math/rand source that is safe for concurrent use.
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource returns a non-deterministic Source seeded from crypto/rand.
func NewSource() Source {
	return NewSeededSource(newSeed())
}

// NewSeededSource returns a Source that produces a repeatable sequence for a
// given seed.
func NewSeededSource(seed int64) Source {
	return &lockedSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) IntRange(min, max int) int {
	if max <= min {
		return min
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rng.Intn(max-min+1)
}

// newSeed reads a seed from crypto/rand, falling back to the clock if the
// system source is unavailable.
func newSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

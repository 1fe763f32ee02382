package battle

import (
	"math/rand"
	"time"
)

// NewRNG returns the random source driving one battle's rolls. Seeded from
// the clock in production; tests pass a fixed seed for reproducible outcomes.
func NewRNG() *rand.Rand { return NewSeededRNG(time.Now().UnixNano()) }

// NewSeededRNG builds a deterministic source for a known seed.
func NewSeededRNG(seed int64) *rand.Rand { return rand.New(rand.NewSource(seed)) }

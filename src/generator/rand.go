package generator

import (
	"math"
	"math/rand"
	"sync/atomic"
	"time"
)

// -----------------------------------------------------------------------------
// Random sources
// -----------------------------------------------------------------------------

// UniformSource yields independent uniform draws in [0, 1). The generator
// takes it as an explicit parameter so tests can supply deterministic
// sequences and concurrent callers never share random state.
type UniformSource interface {
	Float64() float64
}

// -----------------------------------------------------------------------------

// NewSeededSource returns a deterministic source for the given seed. Two
// sources built from the same seed produce identical streams.
func NewSeededSource(seed int64) UniformSource {
	return rand.New(rand.NewSource(seed))
}

// -----------------------------------------------------------------------------

var sourceCounter int64

// NewRandomSource returns a source seeded for an independent stream. The
// counter keeps two sources created in the same nanosecond apart.
func NewRandomSource() UniformSource {
	n := atomic.AddInt64(&sourceCounter, 1)
	return NewSeededSource(time.Now().UnixNano() ^ (n << 32))
}

// -----------------------------------------------------------------------------

// normFloat64 draws a standard normal via the Box-Muller transform from two
// independent uniform draws.
func normFloat64(src UniformSource) float64 {
	u1 := src.Float64()
	for u1 == 0 { // log(0) is undefined
		u1 = src.Float64()
	}
	u2 := src.Float64()

	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

package ports

import (
	"context"
	"math/rand"
)

// UniformSource yields uniform draws in [0, 1).
// *rand.Rand satisfies it; tests substitute fixed sequences.
type UniformSource interface {
	Float64() float64
}

// RNGPort provides per-run random number generation
type RNGPort interface {
	// Stream creates an RNG for one run. With a nil seed the stream is seeded from entropy.
	Stream(ctx context.Context, runID string, seed *int64) (*rand.Rand, error)
}

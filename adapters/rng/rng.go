package rng

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"
)

// RNGAdapter implements ports.RNGPort on top of math/rand sources.
// Every call returns a fresh *rand.Rand, so concurrent runs never share a source.
type RNGAdapter struct{}

// NewRNGAdapter creates an RNG adapter
func NewRNGAdapter() *RNGAdapter {
	return &RNGAdapter{}
}

// Stream creates the RNG for a single run. A fixed seed reproduces the run exactly;
// without one the stream mixes process entropy with the run ID.
func (r *RNGAdapter) Stream(ctx context.Context, runID string, seed *int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seed != nil {
		return rand.New(rand.NewSource(*seed)), nil
	}
	return rand.New(rand.NewSource(entropySeed() ^ int64(hashString(runID)))), nil
}

func entropySeed() int64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2
	}
	return hash
}

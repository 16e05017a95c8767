package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Short returns the first 12 hex characters, enough to tell runs apart in logs
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// ComputeFingerprint hashes an ordered list of run inputs.
// Two runs with the same fingerprint and a fixed seed produce identical samples.
func ComputeFingerprint(parts ...interface{}) Hash {
	var data strings.Builder
	for i, part := range parts {
		if i > 0 {
			data.WriteByte('|')
		}
		data.WriteString(fmt.Sprintf("%v", part))
	}
	return NewHash([]byte(data.String()))
}

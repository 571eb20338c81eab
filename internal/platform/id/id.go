// Package id generates identifiers for players' inventory entries and tool
// invocations.
package id

import (
	"encoding/base32"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns a random v4 UUID encoded as 26 lowercase base32 characters.
func NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return strings.ToLower(encoding.EncodeToString(value[:])), nil
}

// NewShort returns prefix followed by the first n hex characters of a random
// v4 UUID, e.g. "mat_1a2b3c4d". n is clamped to [1,32].
func NewShort(prefix string, n int) (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	if n < 1 {
		n = 1
	}
	if n > 32 {
		n = 32
	}
	return prefix + hex.EncodeToString(value[:])[:n], nil
}

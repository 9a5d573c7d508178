// Package uuid hands out identities for effects so saved auras can be
// referenced by string. The generator is an interface so tests can pin IDs.
package uuid

//go:generate mockgen -destination=mock/mock_generator.go -package=mockuuid -source=uuid.go

import (
	"strconv"

	"github.com/google/uuid"
)

// Generator produces unique string identifiers
type Generator interface {
	New() string
}

// GoogleUUIDGenerator implements Generator with random v4 UUIDs
type GoogleUUIDGenerator struct{}

// New generates a new UUID string
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// NewGoogleUUIDGenerator creates a new GoogleUUIDGenerator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}

// Sequence returns IDs with a fixed prefix and an increasing counter.
// Useful for deterministic save files in tests and tools.
type Sequence struct {
	Prefix string
	next   int
}

// New returns the next identifier in the sequence
func (s *Sequence) New() string {
	s.next++
	return s.Prefix + strconv.Itoa(s.next)
}

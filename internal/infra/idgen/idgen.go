// Package idgen provides domain.IDGenerator implementations.
package idgen

import (
	"github.com/google/uuid"

	"github.com/runoshun/bugtrack/internal/domain"
)

// UUID generates random (version 4) UUIDs.
type UUID struct{}

// NewID returns a new random UUID string.
func (UUID) NewID() string {
	return uuid.NewString()
}

var _ domain.IDGenerator = UUID{}

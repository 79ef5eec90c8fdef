// Package id generates identifiers with google/uuid.
package id

import (
	"strings"

	"github.com/google/uuid"
)

type UUIDGenerator struct{}

func NewUUIDGenerator() UUIDGenerator { return UUIDGenerator{} }

// NewID returns a random (v4) UUID string.
func (UUIDGenerator) NewID() string { return uuid.NewString() }

// NewToken returns an opaque session token without dashes.
func (UUIDGenerator) NewToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "") + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewTrackingNumber returns a short upper-case reference for parcels.
func (UUIDGenerator) NewTrackingNumber() string {
	return "TRK" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

package utils

import "github.com/google/uuid"

// UUIDGenerator mints the identifiers the protocol passes around as opaque
// strings: key handles and enrollment session ids. Handles are v7 UUIDs so
// that a bundle's newest key sorts last.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator issues pipeline run ids.
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator issues v7 UUIDs so run ids sort by start time.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("new run id: %w", err)
	}
	return v.String(), nil
}

// Sequence returns the given ids in order, then fails. Tests use it to pin
// run ids.
type Sequence []string

func (s *Sequence) NewID() (string, error) {
	if len(*s) == 0 {
		return "", fmt.Errorf("id sequence exhausted")
	}
	next := (*s)[0]
	*s = (*s)[1:]
	return next, nil
}

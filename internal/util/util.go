package util

import (
	"github.com/google/uuid"
)

// NewHandID returns a unique identifier for a hand
func NewHandID() string {
	return uuid.New().String()
}

package common

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID returns a fresh UUID string.
func GenerateUUID() string {
	return uuid.New().String()
}

// NormalizeName trims and lower-cases a name for identity comparisons.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateRunID creates a short, human-readable batch run ID.
// Format: {kind}-{8charHexUUID}, e.g. "search-a3f8e2b1"
func GenerateRunID(kind string) string {
	if kind == "" {
		kind = "run"
	}
	return kind + "-" + generateShortUUID()
}

func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}

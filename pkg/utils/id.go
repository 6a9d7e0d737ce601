package utils

import (
	"strings"

	"github.com/google/uuid"
)

// ShortID creates an 8-character hex string from a UUID.
// Used as the per-run seed in order and shipment numbers.
func ShortID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}

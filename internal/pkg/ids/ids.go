// Package ids generates prefixed entity identifiers.
package ids

import (
	"strings"

	"github.com/google/uuid"
)

// New returns prefix + "_" + a dashless UUIDv4.
func New(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// HasPrefix reports whether id was generated for the given entity prefix.
func HasPrefix(id, prefix string) bool {
	return strings.HasPrefix(id, prefix+"_")
}

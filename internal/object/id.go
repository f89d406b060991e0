package object

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a random 32 character identifier.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

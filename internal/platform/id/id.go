package id

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// UUID issues random v4 identifiers.
type UUID struct{}

func (UUID) New() string {
	return uuid.NewString()
}

// Short issues 8-character hex ids for records users refer to by hand on
// the command line, such as reminders.
type Short struct{}

func (Short) New() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return uuid.NewString()[:8]
	}
	return hex.EncodeToString(buf)
}

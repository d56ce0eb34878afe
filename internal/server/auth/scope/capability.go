package scope

import (
	"github.com/google/uuid"

	"github.com/adhalianna/trackers/internal/base62"
)

// Capability describes one capability class: its name and how its variable
// component converts to and from the encoded string form. Extractors are
// generic over this interface rather than over any concrete type.
type Capability[V any] interface {
	// CapabilityName returns the fixed name part of the class's tokens.
	// It must never contain the separator character.
	CapabilityName() string
	// ParseVariable decodes the variable component. A failure must surface
	// as an error, never as a zero value.
	ParseVariable(s string) (V, error)
	// FormatVariable encodes a variable so that ParseVariable round-trips it.
	FormatVariable(v V) string
}

// UserResources is the capability granting access to all resources owned by
// one user. Its variable is the owner's UUID, base62-encoded for compactness.
type UserResources struct{}

func (UserResources) CapabilityName() string { return "user_resources" }

func (UserResources) ParseVariable(s string) (uuid.UUID, error) {
	return base62.DecodeUUID(s)
}

func (UserResources) FormatVariable(v uuid.UUID) string {
	return base62.EncodeUUID(v)
}

// Produce formats a full capability token for the given variable.
func Produce[V any](c Capability[V], v V) Token {
	// CapabilityName carries no separator, so NewToken cannot fail here.
	t, _ := NewToken(c.CapabilityName(), c.FormatVariable(v))
	return t
}

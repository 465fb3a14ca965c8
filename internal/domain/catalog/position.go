package catalog

import (
	"regexp"

	"github.com/retailpos/backend/internal/domain/shared"
)

// Position is a shelf location in aisle-rack-level form, e.g. "12-AB-7".
// The empty string means the product has not been shelved yet; an unshelved
// product cannot have its quantity changed.
type Position string

var positionPattern = regexp.MustCompile(`^[0-9]+-[a-zA-Z]+-[0-9]+$`)

// ErrInvalidPosition is returned when a location string is malformed
var ErrInvalidPosition = shared.NewDomainError("INVALID_LOCATION", "Position must be in NUMBER-LETTERS-NUMBER form")

// ParsePosition validates a shelf location. The empty string is accepted and
// clears the location.
func ParsePosition(s string) (Position, error) {
	if s == "" {
		return "", nil
	}
	if !positionPattern.MatchString(s) {
		return "", ErrInvalidPosition
	}
	return Position(s), nil
}

// IsSet reports whether the position points at a shelf
func (p Position) IsSet() bool {
	return p != ""
}

// String returns the position as a plain string
func (p Position) String() string {
	return string(p)
}

package identity

import (
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Principal is the authenticated caller of an operation. It is carried
// explicitly into every privileged call instead of living in global state,
// so multiple principals can drive the core concurrently.
type Principal struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Role     Role      `json:"role"`
}

// NewPrincipal creates a principal for a user
func NewPrincipal(u *User) *Principal {
	return &Principal{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
	}
}

// Authorize checks that the principal exists and its role belongs to the
// allowed set. It is the single authorization gate for every privileged
// operation; intra-core calls bypass it instead of escalating roles.
func Authorize(p *Principal, allowed RoleSet) error {
	if p == nil {
		return shared.ErrUnauthorized
	}
	if !p.Role.IsValid() || !allowed.Contains(p.Role) {
		return shared.ErrUnauthorized
	}
	return nil
}

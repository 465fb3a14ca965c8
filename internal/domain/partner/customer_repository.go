package partner

import (
	"context"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository defines persistence operations for customers
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByCard(ctx context.Context, card LoyaltyCard) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ExistsByCard reports whether another customer (excluding the given id)
	// already holds the card.
	ExistsByCard(ctx context.Context, card LoyaltyCard, excludeID uuid.UUID) (bool, error)
}

package catalog

import (
	"context"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines persistence operations for product types
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductType, error)
	FindByCode(ctx context.Context, code Barcode) (*ProductType, error)
	// SearchByDescription matches a case-insensitive substring of the
	// description; an empty text matches every product.
	SearchByDescription(ctx context.Context, text string) ([]ProductType, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ProductType, error)
	Save(ctx context.Context, product *ProductType) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ExistsByCode reports whether another product (excluding the given id)
	// already uses the code.
	ExistsByCode(ctx context.Context, code Barcode, excludeID uuid.UUID) (bool, error)
	// ExistsByPosition reports whether another product (excluding the given
	// id) already occupies the shelf position.
	ExistsByPosition(ctx context.Context, position Position, excludeID uuid.UUID) (bool, error)
}

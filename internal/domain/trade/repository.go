package trade

import (
	"context"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SaleTransactionRepository defines persistence operations for sales
type SaleTransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SaleTransaction, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]SaleTransaction, error)
	Save(ctx context.Context, sale *SaleTransaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ReturnTransactionRepository defines persistence operations for returns
type ReturnTransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReturnTransaction, error)
	FindBySale(ctx context.Context, saleID uuid.UUID) ([]ReturnTransaction, error)
	Save(ctx context.Context, ret *ReturnTransaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	// SumReturnedForSale totals the already-returned units of a product
	// across the returns of a sale, excluding one return (pass uuid.Nil to
	// exclude none).
	SumReturnedForSale(ctx context.Context, saleID uuid.UUID, barcode string, excludeReturnID uuid.UUID) (int, error)
}

// PurchaseOrderRepository defines persistence operations for supplier orders
type PurchaseOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseOrder, error)
	Save(ctx context.Context, order *PurchaseOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
}

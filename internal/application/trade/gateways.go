package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailpos/backend/internal/domain/catalog"
)

// CatalogGateway is the slice of the catalog the trade services need:
// resolving a barcode to its product and moving stock. Implemented by the
// catalog application service on its internal, non-authorized path.
type CatalogGateway interface {
	ProductByCode(ctx context.Context, code catalog.Barcode) (*catalog.ProductType, error)
	AdjustStock(ctx context.Context, productID uuid.UUID, delta int) error
}

// LedgerGateway posts settled amounts to the cash ledger: positive for
// sales, negative for refunds and supplier payments. The non-negative
// balance invariant is enforced behind this interface.
type LedgerGateway interface {
	Post(ctx context.Context, amount decimal.Decimal) error
}

package finance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// BalanceOperationRepository defines persistence operations for the ledger.
// The log is append-only: there is no update or delete.
type BalanceOperationRepository interface {
	Append(ctx context.Context, op *BalanceOperation) error
	// Sum returns the running balance over all entries.
	Sum(ctx context.Context) (decimal.Decimal, error)
	// FindBetween returns entries whose date falls inside the inclusive
	// range; either bound may be nil to leave that side open.
	FindBetween(ctx context.Context, from, to *time.Time) ([]BalanceOperation, error)
}

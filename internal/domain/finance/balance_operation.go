package finance

import (
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OperationType classifies a balance operation by the sign of its amount
type OperationType string

const (
	OperationCredit OperationType = "CREDIT"
	OperationDebit  OperationType = "DEBIT"
)

// IsValid checks if the type is a known OperationType
func (t OperationType) IsValid() bool {
	return t == OperationCredit || t == OperationDebit
}

// BalanceOperation is one entry of the append-only cash ledger. Entries are
// never mutated or deleted; the shop balance is the running sum of their
// signed amounts and must stay non-negative at all times.
type BalanceOperation struct {
	shared.BaseAggregateRoot
	Date  time.Time
	Money decimal.Decimal
	Type  OperationType
}

// NewBalanceOperation creates a ledger entry for a signed amount, tagged
// CREDIT for non-negative amounts and DEBIT otherwise, dated now. Whether
// the entry may actually be appended depends on the running balance and is
// decided by the ledger service inside the append transaction.
func NewBalanceOperation(amount decimal.Decimal) *BalanceOperation {
	opType := OperationCredit
	if amount.IsNegative() {
		opType = OperationDebit
	}

	op := &BalanceOperation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              time.Now(),
		Money:             amount,
		Type:              opType,
	}

	op.AddDomainEvent(NewBalanceRecordedEvent(op))

	return op
}

// NormalizeRange orders an optional date range so that from never follows
// to. Callers may pass the bounds swapped; the filter is inclusive.
func NormalizeRange(from, to *time.Time) (*time.Time, *time.Time) {
	if from != nil && to != nil && to.Before(*from) {
		return to, from
	}
	return from, to
}

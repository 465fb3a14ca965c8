package trade

import (
	"fmt"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnLine is one returned product line. Refunds are computed at full
// unit price; the discounts of the original sale do not carry over.
type ReturnLine struct {
	ID        uuid.UUID
	ReturnID  uuid.UUID
	Barcode   string
	Amount    int
	UnitPrice decimal.Decimal
}

// LineTotal returns amount * full unit price
func (l *ReturnLine) LineTotal() decimal.Decimal {
	return decimal.NewFromInt(int64(l.Amount)).Mul(l.UnitPrice)
}

// ReturnTransaction is the aggregate root of a return of a past sale.
// The machine mirrors sales: OPEN -> CLOSED (commit) -> PAYED; an aborted
// return is deleted instead of closed. SaleID is a lookup back-reference,
// not ownership: the referenced sale is never modified by a return.
type ReturnTransaction struct {
	shared.BaseAggregateRoot
	SaleID        uuid.UUID
	Lines         []ReturnLine
	Status        TransactionStatus
	Total         decimal.Decimal
	PaymentMethod PaymentMethod
}

// NewReturnTransaction opens a return against an existing sale
func NewReturnTransaction(saleID uuid.UUID) (*ReturnTransaction, error) {
	if saleID == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	ret := &ReturnTransaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SaleID:            saleID,
		Lines:             make([]ReturnLine, 0),
		Status:            StatusOpen,
		Total:             decimal.Zero,
	}

	ret.AddDomainEvent(NewReturnOpenedEvent(ret))

	return ret, nil
}

// AddLine registers amount units to return, merging with an existing line
// for the same barcode. returnable is the quantity still eligible for this
// product: sold amount minus everything already returned in other
// transactions; the merged line may never exceed it.
func (r *ReturnTransaction) AddLine(barcode string, amount int, unitPrice decimal.Decimal, returnable int) error {
	if r.Status != StatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Lines are mutable only while the return is open")
	}
	if amount <= 0 {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}

	current := r.LineAmount(barcode)
	if current+amount > returnable {
		return shared.NewDomainError("INVALID_AMOUNT", "Cannot return more than was sold")
	}

	for idx := range r.Lines {
		if r.Lines[idx].Barcode == barcode {
			r.Lines[idx].Amount += amount
			r.Touch()
			return nil
		}
	}

	r.Lines = append(r.Lines, ReturnLine{
		ID:        uuid.New(),
		ReturnID:  r.ID,
		Barcode:   barcode,
		Amount:    amount,
		UnitPrice: unitPrice,
	})
	r.Touch()

	return nil
}

// Close commits the return: the total is fixed at full unit prices and the
// status moves to CLOSED. Re-crediting inventory for every line is the
// caller's responsibility and must commit in the same transaction. An abort
// never reaches here - the transaction is deleted instead.
func (r *ReturnTransaction) Close() error {
	if !r.Status.CanTransitionTo(StatusClosed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot close a return in %s status", r.Status))
	}

	total := decimal.Zero
	for idx := range r.Lines {
		total = total.Add(r.Lines[idx].LineTotal())
	}
	r.Total = total
	r.Status = StatusClosed
	r.Touch()

	r.AddDomainEvent(NewReturnCommittedEvent(r))

	return nil
}

// MarkPaid moves a committed return to its terminal PAYED state. The
// matching ledger debit must commit in the same transaction; if the ledger
// rejects the refund the status change is rolled back with it.
func (r *ReturnTransaction) MarkPaid(method PaymentMethod) error {
	if !r.Status.CanTransitionTo(StatusPaid) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot refund a return in %s status", r.Status))
	}
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment method must be cash or card")
	}

	r.Status = StatusPaid
	r.PaymentMethod = method
	r.Touch()

	r.AddDomainEvent(NewReturnRefundedEvent(r))

	return nil
}

// CanDelete reports whether the return may still be discarded
func (r *ReturnTransaction) CanDelete() bool {
	return r.Status != StatusPaid
}

// LineAmount returns how many units of a product this return already holds
func (r *ReturnTransaction) LineAmount(barcode string) int {
	for idx := range r.Lines {
		if r.Lines[idx].Barcode == barcode {
			return r.Lines[idx].Amount
		}
	}
	return 0
}

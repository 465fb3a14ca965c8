package trade

import (
	"fmt"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus represents the lifecycle state of a sale or return
type TransactionStatus string

const (
	StatusOpen   TransactionStatus = "OPEN"
	StatusClosed TransactionStatus = "CLOSED"
	StatusPaid   TransactionStatus = "PAYED"
)

// IsValid checks if the status is a valid TransactionStatus
func (s TransactionStatus) IsValid() bool {
	switch s {
	case StatusOpen, StatusClosed, StatusPaid:
		return true
	}
	return false
}

// String returns the string representation of TransactionStatus
func (s TransactionStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// The machine is strictly forward: OPEN -> CLOSED -> PAYED.
func (s TransactionStatus) CanTransitionTo(target TransactionStatus) bool {
	switch s {
	case StatusOpen:
		return target == StatusClosed
	case StatusClosed:
		return target == StatusPaid
	case StatusPaid:
		return false // terminal
	}
	return false
}

// PaymentMethod is how a transaction was settled
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// IsValid checks if the method is a known PaymentMethod
func (m PaymentMethod) IsValid() bool {
	return m == PaymentCash || m == PaymentCard
}

// TicketEntry is one product line of a sale transaction. It is owned
// exclusively by its transaction and mutable only while the sale is OPEN.
type TicketEntry struct {
	ID           uuid.UUID
	SaleID       uuid.UUID
	Barcode      string
	Description  string
	Amount       int
	UnitPrice    decimal.Decimal
	DiscountRate decimal.Decimal
}

// LineTotal returns amount * price after the per-line discount
func (e *TicketEntry) LineTotal() decimal.Decimal {
	gross := decimal.NewFromInt(int64(e.Amount)).Mul(e.UnitPrice)
	return gross.Sub(gross.Mul(e.DiscountRate))
}

// SaleTransaction is the aggregate root of a cart lifecycle:
// OPEN (mutable) -> CLOSED (total fixed) -> PAYED (terminal).
type SaleTransaction struct {
	shared.BaseAggregateRoot
	Entries       []TicketEntry
	DiscountRate  decimal.Decimal
	Status        TransactionStatus
	Total         decimal.Decimal
	PaymentMethod PaymentMethod
}

// NewSaleTransaction opens an empty cart
func NewSaleTransaction() *SaleTransaction {
	sale := &SaleTransaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Entries:           make([]TicketEntry, 0),
		DiscountRate:      decimal.Zero,
		Status:            StatusOpen,
		Total:             decimal.Zero,
	}

	sale.AddDomainEvent(NewSaleOpenedEvent(sale))

	return sale
}

// AddEntry puts amount units of a product into the cart, merging with an
// existing line for the same barcode. The matching inventory decrement is
// the caller's responsibility and must commit in the same transaction.
func (s *SaleTransaction) AddEntry(barcode, description string, amount int, unitPrice decimal.Decimal) error {
	if s.Status != StatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Entries are mutable only while the sale is open")
	}
	if amount <= 0 {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if barcode == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}

	for idx := range s.Entries {
		if s.Entries[idx].Barcode == barcode {
			s.Entries[idx].Amount += amount
			s.Touch()
			return nil
		}
	}

	s.Entries = append(s.Entries, TicketEntry{
		ID:           uuid.New(),
		SaleID:       s.ID,
		Barcode:      barcode,
		Description:  description,
		Amount:       amount,
		UnitPrice:    unitPrice,
		DiscountRate: decimal.Zero,
	})
	s.Touch()

	return nil
}

// RemoveEntry takes amount units of a product out of the cart, dropping the
// line entirely when it reaches zero. The matching inventory restore is the
// caller's responsibility.
func (s *SaleTransaction) RemoveEntry(barcode string, amount int) error {
	if s.Status != StatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Entries are mutable only while the sale is open")
	}
	if amount <= 0 {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}

	for idx := range s.Entries {
		if s.Entries[idx].Barcode == barcode {
			if s.Entries[idx].Amount < amount {
				return shared.NewDomainError("INVALID_AMOUNT", "Cannot remove more than the cart contains")
			}
			s.Entries[idx].Amount -= amount
			if s.Entries[idx].Amount == 0 {
				s.Entries = append(s.Entries[:idx], s.Entries[idx+1:]...)
			}
			s.Touch()
			return nil
		}
	}

	return shared.NewDomainError("NOT_FOUND", "Product is not in the cart")
}

// SetLineDiscount applies a per-line discount rate in [0,1)
func (s *SaleTransaction) SetLineDiscount(barcode string, rate decimal.Decimal) error {
	if s.Status != StatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Discounts are mutable only while the sale is open")
	}
	if err := validateDiscountRate(rate); err != nil {
		return err
	}

	for idx := range s.Entries {
		if s.Entries[idx].Barcode == barcode {
			s.Entries[idx].DiscountRate = rate
			s.Touch()
			return nil
		}
	}

	return shared.NewDomainError("NOT_FOUND", "Product is not in the cart")
}

// SetSaleDiscount applies a whole-sale discount rate in [0,1)
func (s *SaleTransaction) SetSaleDiscount(rate decimal.Decimal) error {
	if s.Status != StatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Discounts are mutable only while the sale is open")
	}
	if err := validateDiscountRate(rate); err != nil {
		return err
	}

	s.DiscountRate = rate
	s.Touch()

	return nil
}

// Close fixes the total and moves the sale to CLOSED. Line discounts apply
// per line first; the whole-sale discount then compounds multiplicatively.
func (s *SaleTransaction) Close() error {
	if !s.Status.CanTransitionTo(StatusClosed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot close a sale in %s status", s.Status))
	}

	s.Total = s.ComputeTotal()
	s.Status = StatusClosed
	s.Touch()

	s.AddDomainEvent(NewSaleClosedEvent(s))

	return nil
}

// MarkPaid moves a closed sale to its terminal PAYED state. The matching
// ledger credit must commit in the same transaction.
func (s *SaleTransaction) MarkPaid(method PaymentMethod) error {
	if !s.Status.CanTransitionTo(StatusPaid) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot pay a sale in %s status", s.Status))
	}
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment method must be cash or card")
	}

	s.Status = StatusPaid
	s.PaymentMethod = method
	s.Touch()

	s.AddDomainEvent(NewSalePaidEvent(s))

	return nil
}

// CanDelete reports whether the transaction may still be removed
func (s *SaleTransaction) CanDelete() bool {
	return s.Status != StatusPaid
}

// ComputeTotal evaluates the current entries without changing state:
// sum of discounted line totals, reduced once more by the sale discount.
func (s *SaleTransaction) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for idx := range s.Entries {
		total = total.Add(s.Entries[idx].LineTotal())
	}
	return total.Sub(total.Mul(s.DiscountRate))
}

// LoyaltyPoints returns one point per full ten currency units of the
// discounted total.
func (s *SaleTransaction) LoyaltyPoints() int {
	total := s.Total
	if s.Status == StatusOpen {
		total = s.ComputeTotal()
	}
	return int(total.Div(decimal.NewFromInt(10)).IntPart())
}

// EntryAmount returns how many units of a product the cart holds
func (s *SaleTransaction) EntryAmount(barcode string) int {
	for idx := range s.Entries {
		if s.Entries[idx].Barcode == barcode {
			return s.Entries[idx].Amount
		}
	}
	return 0
}

// GetEntry returns the cart line for a barcode, or nil
func (s *SaleTransaction) GetEntry(barcode string) *TicketEntry {
	for idx := range s.Entries {
		if s.Entries[idx].Barcode == barcode {
			return &s.Entries[idx]
		}
	}
	return nil
}

func validateDiscountRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount rate must be in [0,1)")
	}
	return nil
}

package trade

import (
	"fmt"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the procurement state of a supplier order
type OrderStatus string

const (
	OrderStatusIssued    OrderStatus = "ISSUED"
	OrderStatusPaid      OrderStatus = "PAYED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusIssued, OrderStatusPaid, OrderStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Transitions are strictly monotonic: ISSUED -> PAYED -> COMPLETED.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusIssued:
		return target == OrderStatusPaid
	case OrderStatusPaid:
		return target == OrderStatusCompleted
	case OrderStatusCompleted:
		return false // terminal
	}
	return false
}

// PurchaseOrder is the aggregate root of a supplier procurement:
// issue -> pay -> receive, never backwards.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	ProductID    uuid.UUID
	ProductCode  string
	Quantity     int
	PricePerUnit decimal.Decimal
	Status       OrderStatus
}

// NewPurchaseOrder issues an order for an existing product
func NewPurchaseOrder(productID uuid.UUID, productCode string, quantity int, pricePerUnit decimal.Decimal) (*PurchaseOrder, error) {
	if productID == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if pricePerUnit.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price per unit must be positive")
	}

	order := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		ProductCode:       productCode,
		Quantity:          quantity,
		PricePerUnit:      pricePerUnit,
		Status:            OrderStatusIssued,
	}

	order.AddDomainEvent(NewOrderIssuedEvent(order))

	return order, nil
}

// TotalCost returns quantity * price per unit
func (o *PurchaseOrder) TotalCost() decimal.Decimal {
	return decimal.NewFromInt(int64(o.Quantity)).Mul(o.PricePerUnit)
}

// MarkPaid moves the order to PAYED. The matching ledger debit must commit
// in the same transaction; an order never sits in PAYED without it.
func (o *PurchaseOrder) MarkPaid() error {
	if !o.Status.CanTransitionTo(OrderStatusPaid) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot pay an order in %s status", o.Status))
	}

	o.Status = OrderStatusPaid
	o.Touch()

	o.AddDomainEvent(NewOrderPaidEvent(o))

	return nil
}

// Complete records the arrival of the goods. The inventory increment must
// have succeeded first; a terminal order cannot be completed again.
func (o *PurchaseOrder) Complete() error {
	if !o.Status.CanTransitionTo(OrderStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot record arrival of an order in %s status", o.Status))
	}

	o.Status = OrderStatusCompleted
	o.Touch()

	o.AddDomainEvent(NewOrderReceivedEvent(o))

	return nil
}

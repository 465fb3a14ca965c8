package trade

import (
	"github.com/retailpos/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeSale          = "SaleTransaction"
	AggregateTypeReturn        = "ReturnTransaction"
	AggregateTypePurchaseOrder = "PurchaseOrder"
)

// Trade domain event types
const (
	EventTypeSaleOpened      = "SaleOpened"
	EventTypeSaleClosed      = "SaleClosed"
	EventTypeSalePaid        = "SalePaid"
	EventTypeReturnOpened    = "ReturnOpened"
	EventTypeReturnCommitted = "ReturnCommitted"
	EventTypeReturnRefunded  = "ReturnRefunded"
	EventTypeOrderIssued     = "OrderIssued"
	EventTypeOrderPaid       = "OrderPaid"
	EventTypeOrderReceived   = "OrderReceived"
)

// SaleOpenedEvent is published when a cart is opened
type SaleOpenedEvent struct {
	shared.BaseDomainEvent
}

// NewSaleOpenedEvent creates a new SaleOpenedEvent
func NewSaleOpenedEvent(sale *SaleTransaction) *SaleOpenedEvent {
	return &SaleOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleOpened, AggregateTypeSale, sale.ID),
	}
}

// SaleClosedEvent is published when a sale total is fixed
type SaleClosedEvent struct {
	shared.BaseDomainEvent
	Total     string `json:"total"`
	LineCount int    `json:"line_count"`
}

// NewSaleClosedEvent creates a new SaleClosedEvent
func NewSaleClosedEvent(sale *SaleTransaction) *SaleClosedEvent {
	return &SaleClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleClosed, AggregateTypeSale, sale.ID),
		Total:           sale.Total.String(),
		LineCount:       len(sale.Entries),
	}
}

// SalePaidEvent is published when a sale reaches its terminal state
type SalePaidEvent struct {
	shared.BaseDomainEvent
	Total  string        `json:"total"`
	Method PaymentMethod `json:"method"`
}

// NewSalePaidEvent creates a new SalePaidEvent
func NewSalePaidEvent(sale *SaleTransaction) *SalePaidEvent {
	return &SalePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalePaid, AggregateTypeSale, sale.ID),
		Total:           sale.Total.String(),
		Method:          sale.PaymentMethod,
	}
}

// ReturnOpenedEvent is published when a return is opened against a sale
type ReturnOpenedEvent struct {
	shared.BaseDomainEvent
	SaleID string `json:"sale_id"`
}

// NewReturnOpenedEvent creates a new ReturnOpenedEvent
func NewReturnOpenedEvent(ret *ReturnTransaction) *ReturnOpenedEvent {
	return &ReturnOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnOpened, AggregateTypeReturn, ret.ID),
		SaleID:          ret.SaleID.String(),
	}
}

// ReturnCommittedEvent is published when a return is committed
type ReturnCommittedEvent struct {
	shared.BaseDomainEvent
	SaleID string `json:"sale_id"`
	Total  string `json:"total"`
}

// NewReturnCommittedEvent creates a new ReturnCommittedEvent
func NewReturnCommittedEvent(ret *ReturnTransaction) *ReturnCommittedEvent {
	return &ReturnCommittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnCommitted, AggregateTypeReturn, ret.ID),
		SaleID:          ret.SaleID.String(),
		Total:           ret.Total.String(),
	}
}

// ReturnRefundedEvent is published when a committed return is refunded
type ReturnRefundedEvent struct {
	shared.BaseDomainEvent
	Total  string        `json:"total"`
	Method PaymentMethod `json:"method"`
}

// NewReturnRefundedEvent creates a new ReturnRefundedEvent
func NewReturnRefundedEvent(ret *ReturnTransaction) *ReturnRefundedEvent {
	return &ReturnRefundedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnRefunded, AggregateTypeReturn, ret.ID),
		Total:           ret.Total.String(),
		Method:          ret.PaymentMethod,
	}
}

// OrderIssuedEvent is published when a supplier order is issued
type OrderIssuedEvent struct {
	shared.BaseDomainEvent
	ProductCode string `json:"product_code"`
	Quantity    int    `json:"quantity"`
}

// NewOrderIssuedEvent creates a new OrderIssuedEvent
func NewOrderIssuedEvent(order *PurchaseOrder) *OrderIssuedEvent {
	return &OrderIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderIssued, AggregateTypePurchaseOrder, order.ID),
		ProductCode:     order.ProductCode,
		Quantity:        order.Quantity,
	}
}

// OrderPaidEvent is published when a supplier order is paid
type OrderPaidEvent struct {
	shared.BaseDomainEvent
	TotalCost string `json:"total_cost"`
}

// NewOrderPaidEvent creates a new OrderPaidEvent
func NewOrderPaidEvent(order *PurchaseOrder) *OrderPaidEvent {
	return &OrderPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaid, AggregateTypePurchaseOrder, order.ID),
		TotalCost:       order.TotalCost().String(),
	}
}

// OrderReceivedEvent is published when ordered goods arrive
type OrderReceivedEvent struct {
	shared.BaseDomainEvent
	ProductCode string `json:"product_code"`
	Quantity    int    `json:"quantity"`
}

// NewOrderReceivedEvent creates a new OrderReceivedEvent
func NewOrderReceivedEvent(order *PurchaseOrder) *OrderReceivedEvent {
	return &OrderReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderReceived, AggregateTypePurchaseOrder, order.ID),
		ProductCode:     order.ProductCode,
		Quantity:        order.Quantity,
	}
}

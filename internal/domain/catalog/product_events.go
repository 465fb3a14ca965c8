package catalog

import (
	"github.com/retailpos/backend/internal/domain/shared"
)

// Aggregate type constant for ProductType
const AggregateTypeProduct = "ProductType"

// Product domain event types
const (
	EventTypeProductCreated = "ProductCreated"
	EventTypeStockAdjusted  = "StockAdjusted"
)

// ProductCreatedEvent is published when a product type is registered
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Code        string `json:"code"`
	Description string `json:"description"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *ProductType) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		Code:            product.Code.String(),
		Description:     product.Description,
	}
}

// StockAdjustedEvent is published when the on-hand quantity changes
type StockAdjustedEvent struct {
	shared.BaseDomainEvent
	Code     string `json:"code"`
	Delta    int    `json:"delta"`
	Quantity int    `json:"quantity"`
}

// NewStockAdjustedEvent creates a new StockAdjustedEvent
func NewStockAdjustedEvent(product *ProductType, delta int) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockAdjusted, AggregateTypeProduct, product.ID),
		Code:            product.Code.String(),
		Delta:           delta,
		Quantity:        product.Quantity,
	}
}

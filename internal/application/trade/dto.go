package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailpos/backend/internal/domain/trade"
)

// CartItemRequest represents adding or removing units of a product
type CartItemRequest struct {
	Barcode string `json:"barcode" binding:"required,barcode"`
	Amount  int    `json:"amount" binding:"required,gt=0"`
}

// LineDiscountRequest represents a per-line discount
type LineDiscountRequest struct {
	Barcode string          `json:"barcode" binding:"required,barcode"`
	Rate    decimal.Decimal `json:"rate" binding:"required"`
}

// SaleDiscountRequest represents a whole-sale discount
type SaleDiscountRequest struct {
	Rate decimal.Decimal `json:"rate" binding:"required"`
}

// CashPaymentRequest represents settling a sale in cash
type CashPaymentRequest struct {
	Cash decimal.Decimal `json:"cash" binding:"required"`
}

// CardPaymentRequest represents settling a sale or refund by card
type CardPaymentRequest struct {
	CardNumber string `json:"card_number" binding:"required"`
}

// OpenReturnRequest represents opening a return against a paid sale
type OpenReturnRequest struct {
	SaleID uuid.UUID `json:"sale_id" binding:"required"`
}

// ReturnLineRequest represents registering returned units
type ReturnLineRequest struct {
	Barcode string `json:"barcode" binding:"required,barcode"`
	Amount  int    `json:"amount" binding:"required,gt=0"`
}

// CloseReturnRequest commits or aborts an open return
type CloseReturnRequest struct {
	Commit *bool `json:"commit" binding:"required"`
}

// RefundRequest represents paying out a committed return
type RefundRequest struct {
	Method     string `json:"method" binding:"required,oneof=cash card"`
	CardNumber string `json:"card_number"`
}

// IssueOrderRequest represents issuing a supplier order
type IssueOrderRequest struct {
	ProductCode  string          `json:"product_code" binding:"required,barcode"`
	Quantity     int             `json:"quantity" binding:"required,gt=0"`
	PricePerUnit decimal.Decimal `json:"price_per_unit" binding:"required"`
}

// TicketEntryResponse represents one sale line in API responses
type TicketEntryResponse struct {
	Barcode      string          `json:"barcode"`
	Description  string          `json:"description"`
	Amount       int             `json:"amount"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// SaleResponse represents a sale transaction in API responses
type SaleResponse struct {
	ID            uuid.UUID             `json:"id"`
	Entries       []TicketEntryResponse `json:"entries"`
	DiscountRate  decimal.Decimal       `json:"discount_rate"`
	Status        string                `json:"status"`
	Total         decimal.Decimal       `json:"total"`
	PaymentMethod string                `json:"payment_method,omitempty"`
	LoyaltyPoints int                   `json:"loyalty_points"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// PaymentResponse represents a settled sale plus the cash change due
type PaymentResponse struct {
	Sale   SaleResponse    `json:"sale"`
	Change decimal.Decimal `json:"change"`
}

// ReturnLineResponse represents one returned line in API responses
type ReturnLineResponse struct {
	Barcode   string          `json:"barcode"`
	Amount    int             `json:"amount"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// ReturnResponse represents a return transaction in API responses
type ReturnResponse struct {
	ID            uuid.UUID            `json:"id"`
	SaleID        uuid.UUID            `json:"sale_id"`
	Lines         []ReturnLineResponse `json:"lines"`
	Status        string               `json:"status"`
	Total         decimal.Decimal      `json:"total"`
	PaymentMethod string               `json:"payment_method,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// OrderResponse represents a supplier order in API responses
type OrderResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductCode  string          `json:"product_code"`
	Quantity     int             `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewSaleResponse converts a domain sale into a response DTO
func NewSaleResponse(sale *trade.SaleTransaction) SaleResponse {
	entries := make([]TicketEntryResponse, len(sale.Entries))
	for i := range sale.Entries {
		e := &sale.Entries[i]
		entries[i] = TicketEntryResponse{
			Barcode:      e.Barcode,
			Description:  e.Description,
			Amount:       e.Amount,
			UnitPrice:    e.UnitPrice,
			DiscountRate: e.DiscountRate,
			LineTotal:    e.LineTotal(),
		}
	}
	total := sale.Total
	if sale.Status == trade.StatusOpen {
		total = sale.ComputeTotal()
	}
	return SaleResponse{
		ID:            sale.ID,
		Entries:       entries,
		DiscountRate:  sale.DiscountRate,
		Status:        sale.Status.String(),
		Total:         total,
		PaymentMethod: string(sale.PaymentMethod),
		LoyaltyPoints: sale.LoyaltyPoints(),
		CreatedAt:     sale.CreatedAt,
		UpdatedAt:     sale.UpdatedAt,
	}
}

// NewSaleResponses converts a slice of domain sales
func NewSaleResponses(sales []trade.SaleTransaction) []SaleResponse {
	responses := make([]SaleResponse, len(sales))
	for i := range sales {
		responses[i] = NewSaleResponse(&sales[i])
	}
	return responses
}

// NewReturnResponse converts a domain return into a response DTO
func NewReturnResponse(ret *trade.ReturnTransaction) ReturnResponse {
	lines := make([]ReturnLineResponse, len(ret.Lines))
	for i := range ret.Lines {
		l := &ret.Lines[i]
		lines[i] = ReturnLineResponse{
			Barcode:   l.Barcode,
			Amount:    l.Amount,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal(),
		}
	}
	return ReturnResponse{
		ID:            ret.ID,
		SaleID:        ret.SaleID,
		Lines:         lines,
		Status:        ret.Status.String(),
		Total:         ret.Total,
		PaymentMethod: string(ret.PaymentMethod),
		CreatedAt:     ret.CreatedAt,
		UpdatedAt:     ret.UpdatedAt,
	}
}

// NewReturnResponses converts a slice of domain returns
func NewReturnResponses(rets []trade.ReturnTransaction) []ReturnResponse {
	responses := make([]ReturnResponse, len(rets))
	for i := range rets {
		responses[i] = NewReturnResponse(&rets[i])
	}
	return responses
}

// NewOrderResponse converts a domain order into a response DTO
func NewOrderResponse(order *trade.PurchaseOrder) OrderResponse {
	return OrderResponse{
		ID:           order.ID,
		ProductID:    order.ProductID,
		ProductCode:  order.ProductCode,
		Quantity:     order.Quantity,
		PricePerUnit: order.PricePerUnit,
		TotalCost:    order.TotalCost(),
		Status:       order.Status.String(),
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}

// NewOrderResponses converts a slice of domain orders
func NewOrderResponses(orders []trade.PurchaseOrder) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = NewOrderResponse(&orders[i])
	}
	return responses
}

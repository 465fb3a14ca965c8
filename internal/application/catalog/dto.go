package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailpos/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to register a product type
type CreateProductRequest struct {
	Code         string          `json:"code" binding:"required,barcode"`
	Description  string          `json:"description" binding:"required,min=1,max=200"`
	PricePerUnit decimal.Decimal `json:"price_per_unit" binding:"required"`
	Notes        string          `json:"notes"`
}

// UpdateProductRequest represents a request to update a product type
type UpdateProductRequest struct {
	Code         string          `json:"code" binding:"required,barcode"`
	Description  string          `json:"description" binding:"required,min=1,max=200"`
	PricePerUnit decimal.Decimal `json:"price_per_unit" binding:"required"`
	Notes        string          `json:"notes"`
}

// SetPositionRequest represents a request to shelve or unshelve a product
type SetPositionRequest struct {
	Position string `json:"position"`
}

// AdjustQuantityRequest represents a signed stock change
type AdjustQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// ProductResponse represents a product type in API responses
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	Description  string          `json:"description"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Quantity     int             `json:"quantity"`
	Notes        string          `json:"notes,omitempty"`
	Position     string          `json:"position,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewProductResponse converts a domain product into a response DTO
func NewProductResponse(p *catalog.ProductType) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Code:         string(p.Code),
		Description:  p.Description,
		PricePerUnit: p.PricePerUnit,
		Quantity:     p.Quantity,
		Notes:        p.Notes,
		Position:     string(p.Position),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// NewProductResponses converts a slice of domain products
func NewProductResponses(products []catalog.ProductType) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = NewProductResponse(&products[i])
	}
	return responses
}

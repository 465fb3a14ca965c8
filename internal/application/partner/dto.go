package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/retailpos/backend/internal/domain/partner"
)

// CreateCustomerRequest represents registering a customer
type CreateCustomerRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateCustomerRequest represents renaming and re-binding in one call.
// Card is a pointer: nil leaves the card untouched, the empty string
// detaches it, a 10-digit code re-binds.
type UpdateCustomerRequest struct {
	Name string  `json:"name" binding:"required,min=1,max=100"`
	Card *string `json:"card"`
}

// AttachCardRequest represents binding a loyalty card
type AttachCardRequest struct {
	Card string `json:"card" binding:"required,len=10,numeric"`
}

// ModifyPointsRequest represents a signed points delta
type ModifyPointsRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Card      string    `json:"card,omitempty"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CardResponse represents a freshly issued loyalty card code
type CardResponse struct {
	Card string `json:"card"`
}

// NewCustomerResponse converts a domain customer into a response DTO
func NewCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Card:      c.Card.String(),
		Points:    c.Points,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewCustomerResponses converts a slice of domain customers
func NewCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = NewCustomerResponse(&customers[i])
	}
	return responses
}

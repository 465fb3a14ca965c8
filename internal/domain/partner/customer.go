package partner

import (
	"strings"

	"github.com/retailpos/backend/internal/domain/shared"
)

// Customer represents a registered shop customer, optionally holding a
// loyalty card with an accruable points balance.
// It is the aggregate root for customer directory operations.
type Customer struct {
	shared.BaseAggregateRoot
	Name   string
	Card   LoyaltyCard
	Points int
}

// LoyaltyCard is a ten-digit card code; the empty string means the customer
// holds no card. Card codes are unique across customers.
type LoyaltyCard string

// ErrInvalidLoyaltyCard is returned when a card code is malformed
var ErrInvalidLoyaltyCard = shared.NewDomainError("INVALID_CARD", "Loyalty card must be a 10-digit code")

// ParseLoyaltyCard validates a card code; the empty string is accepted and
// means "no card".
func ParseLoyaltyCard(code string) (LoyaltyCard, error) {
	if code == "" {
		return "", nil
	}
	if len(code) != 10 {
		return "", ErrInvalidLoyaltyCard
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return "", ErrInvalidLoyaltyCard
		}
	}
	return LoyaltyCard(code), nil
}

// IsSet reports whether the customer holds a card
func (c LoyaltyCard) IsSet() bool {
	return c != ""
}

// String returns the card code as a plain string
func (c LoyaltyCard) String() string {
	return string(c)
}

// NewCustomer registers a customer without a loyalty card
func NewCustomer(name string) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// Rename changes the customer's name
func (c *Customer) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	c.Name = name
	c.Touch()
	c.IncrementVersion()
	return nil
}

// AttachCard binds a loyalty card to the customer. Uniqueness across
// customers is enforced by the repository lookup in the application layer.
// Re-binding a different card resets the points balance.
func (c *Customer) AttachCard(code string) error {
	card, err := ParseLoyaltyCard(code)
	if err != nil {
		return err
	}
	if !card.IsSet() {
		return ErrInvalidLoyaltyCard
	}
	if c.Card != card {
		c.Points = 0
	}
	c.Card = card
	c.Touch()
	c.IncrementVersion()
	return nil
}

// DetachCard removes the loyalty card and forfeits its points
func (c *Customer) DetachCard() {
	c.Card = ""
	c.Points = 0
	c.Touch()
	c.IncrementVersion()
}

// ModifyPoints applies a signed points delta. The customer must hold a card
// and the balance can never go negative.
func (c *Customer) ModifyPoints(delta int) error {
	if !c.Card.IsSet() {
		return shared.NewDomainError("INVALID_CARD", "Customer holds no loyalty card")
	}
	if c.Points+delta < 0 {
		return shared.NewDomainError("INVALID_POINTS", "Points balance cannot go negative")
	}
	c.Points += delta
	c.Touch()
	c.IncrementVersion()
	return nil
}

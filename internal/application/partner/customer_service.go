package partner

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
)

// how many random card codes to try before giving up on a collision streak
const cardIssueAttempts = 5

// CustomerService handles the customer directory and loyalty cards. Every
// authenticated role may use it.
type CustomerService struct {
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create registers a customer without a loyalty card
func (s *CustomerService) Create(ctx context.Context, p *identity.Principal, req CreateCustomerRequest) (*CustomerResponse, error) {
	if err := identity.Authorize(p, identity.DirectoryAccess); err != nil {
		return nil, err
	}

	customer, err := partner.NewCustomer(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("Customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("created_by", p.Username),
	)

	resp := NewCustomerResponse(customer)
	return &resp, nil
}

// Update renames a customer and optionally re-binds the card: a nil card
// leaves it untouched, the empty string detaches it, a code binds it.
func (s *CustomerService) Update(ctx context.Context, p *identity.Principal, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	if err := identity.Authorize(p, identity.DirectoryAccess); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := customer.Rename(req.Name); err != nil {
		return nil, err
	}

	if req.Card != nil {
		if *req.Card == "" {
			customer.DetachCard()
		} else if err := s.bindCard(ctx, customer, *req.Card); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	resp := NewCustomerResponse(customer)
	return &resp, nil
}

// Delete removes a customer from the directory
func (s *CustomerService) Delete(ctx context.Context, p *identity.Principal, id uuid.UUID) error {
	if err := identity.Authorize(p, identity.DirectoryAccess); err != nil {
		return err
	}
	if id == uuid.Nil {
		return shared.ErrInvalidIdentifier
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Customer deleted",
		zap.String("customer_id", id.String()),
		zap.String("deleted_by", p.Username),
	)
	return nil
}

// Get returns a customer by ID
func (s *CustomerService) Get(ctx context.Context, p *identity.Principal, id uuid.UUID) (*CustomerResponse, error) {
	if err := identity.Authorize(p, identity.DirectoryAccess); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := NewCustomerResponse(customer)
	return &resp, nil
}

// FindByCard returns the customer holding a loyalty card
func (s *CustomerService) FindByCard(ctx context.Context, p *identity.Principal, card string) (*CustomerResponse, error) {
	if err := identity.Authorize(p, identity.DirectoryAccess); err != nil {
		return nil, err
	}

	code, err := partner.ParseLoyaltyCard(card)
	if err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByCard(ctx, code)
	if err != nil {
		return nil, err
	}

	resp := NewCustomerResponse(customer)
	return &resp, nil
}

// List returns a page of customers
func (s *CustomerService) List(ctx context.Context, p *identity.Principal, filter shared.Filter) ([]CustomerResponse, error) {
	if err := identity.Authorize(p, identity.DirectoryAccess); err != nil {
		return nil, err
	}

	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return NewCustomerResponses(customers), nil
}

// IssueCard generates a fresh 10-digit card code not held by any customer.
// The code is returned unbound; AttachCard binds it.
func (s *CustomerService) IssueCard(ctx context.Context, p *identity.Principal) (*CardResponse, error) {
	if err := identity.Authorize(p, identity.DirectoryAccess); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < cardIssueAttempts; attempt++ {
		code, err := randomCardCode()
		if err != nil {
			return nil, err
		}
		taken, err := s.customerRepo.ExistsByCard(ctx, partner.LoyaltyCard(code), uuid.Nil)
		if err != nil {
			return nil, err
		}
		if !taken {
			return &CardResponse{Card: code}, nil
		}
	}
	return nil, shared.NewDomainError("CARD_ISSUE_FAILED", "Could not generate an unused card code")
}

// AttachCard binds a loyalty card to a customer. A card held by another
// customer is rejected.
func (s *CustomerService) AttachCard(ctx context.Context, p *identity.Principal, id uuid.UUID, req AttachCardRequest) (*CustomerResponse, error) {
	if err := identity.Authorize(p, identity.DirectoryAccess); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.bindCard(ctx, customer, req.Card); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	resp := NewCustomerResponse(customer)
	return &resp, nil
}

// DetachCard removes the loyalty card, forfeiting its points
func (s *CustomerService) DetachCard(ctx context.Context, p *identity.Principal, id uuid.UUID) (*CustomerResponse, error) {
	if err := identity.Authorize(p, identity.DirectoryAccess); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	customer.DetachCard()
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	resp := NewCustomerResponse(customer)
	return &resp, nil
}

// ModifyPoints applies a signed delta to the card's points balance
func (s *CustomerService) ModifyPoints(ctx context.Context, p *identity.Principal, id uuid.UUID, req ModifyPointsRequest) (*CustomerResponse, error) {
	if err := identity.Authorize(p, identity.DirectoryAccess); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := customer.ModifyPoints(req.Delta); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	resp := NewCustomerResponse(customer)
	return &resp, nil
}

// bindCard validates the code and checks no other customer holds it
func (s *CustomerService) bindCard(ctx context.Context, customer *partner.Customer, code string) error {
	card, err := partner.ParseLoyaltyCard(code)
	if err != nil {
		return err
	}
	taken, err := s.customerRepo.ExistsByCard(ctx, card, customer.ID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewDomainError("ALREADY_EXISTS", "Another customer already holds this card")
	}
	return customer.AttachCard(code)
}

// randomCardCode draws 10 random digits
func randomCardCode() (string, error) {
	max := big.NewInt(10)
	code := make([]byte, 10)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = byte('0' + n.Int64())
	}
	return string(code), nil
}

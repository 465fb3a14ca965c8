package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/shared"
)

// UserService handles account administration. Every operation is gated on
// the Administrator role of the calling principal.
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create registers a new user account
func (s *UserService) Create(ctx context.Context, p *identity.Principal, req CreateUserRequest) (*UserResponse, error) {
	if err := identity.Authorize(p, identity.UserAdmin); err != nil {
		return nil, err
	}

	role := identity.Role(req.Role)
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be Administrator, ShopManager or Cashier")
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this username already exists")
	}

	user, err := identity.NewUser(req.Username, req.Password, role)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
		zap.String("created_by", p.Username),
	)

	resp := NewUserResponse(user)
	return &resp, nil
}

// Get returns a user by ID
func (s *UserService) Get(ctx context.Context, p *identity.Principal, id uuid.UUID) (*UserResponse, error) {
	if err := identity.Authorize(p, identity.UserAdmin); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := NewUserResponse(user)
	return &resp, nil
}

// List returns all users
func (s *UserService) List(ctx context.Context, p *identity.Principal, filter shared.Filter) ([]UserResponse, error) {
	if err := identity.Authorize(p, identity.UserAdmin); err != nil {
		return nil, err
	}

	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = NewUserResponse(&users[i])
	}
	return responses, nil
}

// UpdateRole changes the role of a user
func (s *UserService) UpdateRole(ctx context.Context, p *identity.Principal, id uuid.UUID, req UpdateRoleRequest) (*UserResponse, error) {
	if err := identity.Authorize(p, identity.UserAdmin); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := user.ChangeRole(identity.Role(req.Role)); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User role changed",
		zap.String("username", user.Username),
		zap.String("role", req.Role),
		zap.String("changed_by", p.Username),
	)

	resp := NewUserResponse(user)
	return &resp, nil
}

// Delete removes a user account
func (s *UserService) Delete(ctx context.Context, p *identity.Principal, id uuid.UUID) error {
	if err := identity.Authorize(p, identity.UserAdmin); err != nil {
		return err
	}
	if id == uuid.Nil {
		return shared.ErrInvalidIdentifier
	}
	if p.UserID == id {
		return shared.NewDomainError("INVALID_STATE", "A user cannot delete their own account")
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("User deleted",
		zap.String("user_id", id.String()),
		zap.String("deleted_by", p.Username),
	)
	return nil
}

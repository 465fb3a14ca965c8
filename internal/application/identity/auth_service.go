package identity

import (
	"context"

	"go.uber.org/zap"

	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/auth"
)

// AuthService handles authentication operations. There is no server-side
// session: the issued token is the whole login state, so logging out is the
// client discarding it.
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo identity.UserRepository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login authenticates a user and issues an access token. Unknown usernames
// and wrong passwords yield the same error so the response does not leak
// which usernames exist.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Warn("Login attempt for unknown user", zap.String("username", req.Username))
		return nil, shared.ErrInvalidCredentials
	}

	if !user.Active {
		s.logger.Warn("Login attempt for deactivated user", zap.String("username", user.Username))
		return nil, shared.ErrInvalidCredentials
	}

	if !user.CheckPassword(req.Password) {
		s.logger.Warn("Failed password check", zap.String("username", user.Username))
		return nil, shared.ErrInvalidCredentials
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Login still succeeds; the timestamp is best-effort
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	principal := identity.NewPrincipal(user)
	token, err := s.jwtService.Issue(principal)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)

	return &LoginResult{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        NewUserResponse(user),
	}, nil
}

// Logout records the logout of a principal. Tokens are not tracked server
// side, so the only effect is the audit log entry; the client discards the
// token.
func (s *AuthService) Logout(ctx context.Context, p *identity.Principal) error {
	if p == nil {
		return shared.ErrUnauthorized
	}
	s.logger.Info("User logged out", zap.String("username", p.Username))
	return nil
}

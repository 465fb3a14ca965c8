package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-unit-tests-only",
		AccessTokenExpiration: expiration,
		Issuer:                "retailpos-test",
	})
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := newTestService(time.Hour)

	p := &identity.Principal{
		UserID:   uuid.New(),
		Username: "alice",
		Role:     identity.RoleShopManager,
	}

	issued, err := svc.Issue(p)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.AccessToken)
	assert.Equal(t, "Bearer", issued.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, 5*time.Second)

	got, err := svc.Validate(issued.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, p.UserID, got.UserID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, identity.RoleShopManager, got.Role)
}

func TestJWTService_Validate_Expired(t *testing.T) {
	svc := newTestService(-time.Minute)

	issued, err := svc.Issue(&identity.Principal{
		UserID:   uuid.New(),
		Username: "bob",
		Role:     identity.RoleCashier,
	})
	require.NoError(t, err)

	_, err = svc.Validate(issued.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_Validate_WrongSecret(t *testing.T) {
	svc := newTestService(time.Hour)
	other := NewJWTService(config.JWTConfig{
		Secret:                "a-different-secret-entirely-here",
		AccessTokenExpiration: time.Hour,
		Issuer:                "retailpos-test",
	})

	issued, err := svc.Issue(&identity.Principal{
		UserID:   uuid.New(),
		Username: "carol",
		Role:     identity.RoleAdministrator,
	})
	require.NoError(t, err)

	_, err = other.Validate(issued.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_Validate_Garbage(t *testing.T) {
	svc := newTestService(time.Hour)

	_, err := svc.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

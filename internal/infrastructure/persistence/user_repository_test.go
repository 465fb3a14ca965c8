package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/shared"
)

func TestGormUserRepository_SaveAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user, err := identity.NewUser("Alice", "s3cret-pass", identity.RoleCashier)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, user))

	t.Run("finds by id", func(t *testing.T) {
		got, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
		assert.Equal(t, identity.RoleCashier, got.Role)
		assert.True(t, got.Active)
	})

	t.Run("finds by username regardless of case", func(t *testing.T) {
		got, err := repo.FindByUsername(ctx, "ALICE")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("unknown username yields not found", func(t *testing.T) {
		_, err := repo.FindByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormUserRepository_ExistsByUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user, err := identity.NewUser("bob", "s3cret-pass", identity.RoleShopManager)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, user))

	exists, err := repo.ExistsByUsername(ctx, "Bob")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsername(ctx, "carol")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormUserRepository_FindAll(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	for _, name := range []string{"carol", "dave", "erin"} {
		user, err := identity.NewUser(name, "s3cret-pass", identity.RoleCashier)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, user))
	}

	filter := shared.DefaultFilter()
	filter.OrderBy = "username"
	filter.OrderDir = "asc"

	users, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "carol", users[0].Username)
	assert.Equal(t, "erin", users[2].Username)
}

func TestGormUserRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user, err := identity.NewUser("frank", "s3cret-pass", identity.RoleAdministrator)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, user))

	require.NoError(t, repo.Delete(ctx, user.ID))
	_, err = repo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
}

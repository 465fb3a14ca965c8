package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
)

// newMockCustomerRepository creates a GormCustomerRepository with a mocked SQL connection
func newMockCustomerRepository(t *testing.T) (*GormCustomerRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormCustomerRepository(gormDB), mock, mockDB
}

func TestGormCustomerRepository_FindByID_Mock(t *testing.T) {
	t.Run("finds existing customer", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		customerID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "version", "name", "card", "points"}).
			AddRow(customerID, 1, "Mario Rossi", "1234567890", 30)

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(customerID, 1).
			WillReturnRows(rows)

		got, err := repo.FindByID(context.Background(), customerID)
		require.NoError(t, err)
		assert.Equal(t, "Mario Rossi", got.Name)
		assert.Equal(t, partner.LoyaltyCard("1234567890"), got.Card)
		assert.Equal(t, 30, got.Points)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		customerID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "customers"`).
			WithArgs(customerID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByID(context.Background(), customerID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("wraps driver failures", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		customerID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "customers"`).
			WithArgs(customerID, 1).
			WillReturnError(errors.New("connection reset"))

		_, err := repo.FindByID(context.Background(), customerID)
		assert.True(t, shared.IsCode(err, "PERSISTENCE_FAILURE"))
	})
}

func TestGormCustomerRepository_CardLookups(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()

	holder, err := partner.NewCustomer("Mario Rossi")
	require.NoError(t, err)
	require.NoError(t, holder.AttachCard("1234567890"))
	require.NoError(t, repo.Save(ctx, holder))

	cardless, err := partner.NewCustomer("Luigi Verdi")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, cardless))

	t.Run("finds holder by card", func(t *testing.T) {
		got, err := repo.FindByCard(ctx, "1234567890")
		require.NoError(t, err)
		assert.Equal(t, holder.ID, got.ID)
	})

	t.Run("empty card never matches a cardless customer", func(t *testing.T) {
		_, err := repo.FindByCard(ctx, "")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("card taken by another customer", func(t *testing.T) {
		taken, err := repo.ExistsByCard(ctx, "1234567890", uuid.New())
		require.NoError(t, err)
		assert.True(t, taken)
	})

	t.Run("own card is not a conflict", func(t *testing.T) {
		taken, err := repo.ExistsByCard(ctx, "1234567890", holder.ID)
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("empty card never conflicts", func(t *testing.T) {
		taken, err := repo.ExistsByCard(ctx, "", uuid.New())
		require.NoError(t, err)
		assert.False(t, taken)
	})
}

func TestGormCustomerRepository_SaveDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()

	customer, err := partner.NewCustomer("Anna Bianchi")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, customer))

	customer.Name = "Anna Neri"
	require.NoError(t, repo.Save(ctx, customer))

	got, err := repo.FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anna Neri", got.Name)

	require.NoError(t, repo.Delete(ctx, customer.ID))
	_, err = repo.FindByID(ctx, customer.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

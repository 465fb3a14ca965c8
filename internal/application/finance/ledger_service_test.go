package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/shared"
)

// MockBalanceOperationRepository is a mock implementation of
// finance.BalanceOperationRepository
type MockBalanceOperationRepository struct {
	mock.Mock
}

func (m *MockBalanceOperationRepository) Append(ctx context.Context, op *finance.BalanceOperation) error {
	args := m.Called(ctx, op)
	return args.Error(0)
}

func (m *MockBalanceOperationRepository) Sum(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceOperationRepository) FindBetween(ctx context.Context, from, to *time.Time) ([]finance.BalanceOperation, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.BalanceOperation), args.Error(1)
}

func newLedgerService(repo *MockBalanceOperationRepository) *LedgerService {
	return NewLedgerService(repo, shared.NopTransactionManager{}, zap.NewNop())
}

func managerPrincipal() *identity.Principal {
	return &identity.Principal{UserID: uuid.New(), Username: "manager", Role: identity.RoleShopManager}
}

func cashierPrincipal() *identity.Principal {
	return &identity.Principal{UserID: uuid.New(), Username: "cashier", Role: identity.RoleCashier}
}

func TestLedgerService_RecordBalanceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("appends a credit", func(t *testing.T) {
		repo := new(MockBalanceOperationRepository)
		service := newLedgerService(repo)

		repo.On("Sum", ctx).Return(decimal.Zero, nil)
		repo.On("Append", ctx, mock.AnythingOfType("*finance.BalanceOperation")).Return(nil)

		resp, err := service.RecordBalanceUpdate(ctx, managerPrincipal(), RecordBalanceUpdateRequest{
			Amount: decimal.RequireFromString("120.50"),
		})

		require.NoError(t, err)
		assert.Equal(t, "CREDIT", resp.Type)
		assert.True(t, resp.Money.Equal(decimal.RequireFromString("120.50")))
		repo.AssertExpectations(t)
	})

	t.Run("appends a debit covered by the balance", func(t *testing.T) {
		repo := new(MockBalanceOperationRepository)
		service := newLedgerService(repo)

		repo.On("Sum", ctx).Return(decimal.RequireFromString("100"), nil)
		repo.On("Append", ctx, mock.AnythingOfType("*finance.BalanceOperation")).Return(nil)

		resp, err := service.RecordBalanceUpdate(ctx, managerPrincipal(), RecordBalanceUpdateRequest{
			Amount: decimal.RequireFromString("-100"),
		})

		require.NoError(t, err)
		assert.Equal(t, "DEBIT", resp.Type)
	})

	t.Run("rejects a debit that would go negative", func(t *testing.T) {
		repo := new(MockBalanceOperationRepository)
		service := newLedgerService(repo)

		repo.On("Sum", ctx).Return(decimal.RequireFromString("50"), nil)

		_, err := service.RecordBalanceUpdate(ctx, managerPrincipal(), RecordBalanceUpdateRequest{
			Amount: decimal.RequireFromString("-50.01"),
		})

		assert.ErrorIs(t, err, shared.ErrInsufficientFunds)
		repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("cashier cannot touch the ledger", func(t *testing.T) {
		repo := new(MockBalanceOperationRepository)
		service := newLedgerService(repo)

		_, err := service.RecordBalanceUpdate(ctx, cashierPrincipal(), RecordBalanceUpdateRequest{
			Amount: decimal.NewFromInt(10),
		})

		assert.ErrorIs(t, err, shared.ErrUnauthorized)
		repo.AssertNotCalled(t, "Sum", mock.Anything)
	})
}

func TestLedgerService_Balance(t *testing.T) {
	ctx := context.Background()

	repo := new(MockBalanceOperationRepository)
	service := newLedgerService(repo)

	repo.On("Sum", ctx).Return(decimal.RequireFromString("42.42"), nil)

	resp, err := service.Balance(ctx, managerPrincipal())

	require.NoError(t, err)
	assert.True(t, resp.Balance.Equal(decimal.RequireFromString("42.42")))
}

func TestLedgerService_EntriesBetween(t *testing.T) {
	ctx := context.Background()

	t.Run("reorders swapped bounds", func(t *testing.T) {
		repo := new(MockBalanceOperationRepository)
		service := newLedgerService(repo)

		earlier := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		later := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
		op := finance.NewBalanceOperation(decimal.NewFromInt(5))

		repo.On("FindBetween", ctx, &earlier, &later).Return([]finance.BalanceOperation{*op}, nil)

		entries, err := service.EntriesBetween(ctx, managerPrincipal(), &later, &earlier)

		require.NoError(t, err)
		assert.Len(t, entries, 1)
		repo.AssertExpectations(t)
	})

	t.Run("open range passes nil bounds through", func(t *testing.T) {
		repo := new(MockBalanceOperationRepository)
		service := newLedgerService(repo)

		repo.On("FindBetween", ctx, (*time.Time)(nil), (*time.Time)(nil)).Return([]finance.BalanceOperation{}, nil)

		entries, err := service.EntriesBetween(ctx, managerPrincipal(), nil, nil)

		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestLedgerService_Post(t *testing.T) {
	ctx := context.Background()

	t.Run("internal posting skips authorization", func(t *testing.T) {
		repo := new(MockBalanceOperationRepository)
		service := newLedgerService(repo)

		repo.On("Sum", ctx).Return(decimal.Zero, nil)
		repo.On("Append", ctx, mock.AnythingOfType("*finance.BalanceOperation")).Return(nil)

		require.NoError(t, service.Post(ctx, decimal.NewFromInt(30)))
	})

	t.Run("internal posting still guards the balance", func(t *testing.T) {
		repo := new(MockBalanceOperationRepository)
		service := newLedgerService(repo)

		repo.On("Sum", ctx).Return(decimal.Zero, nil)

		err := service.Post(ctx, decimal.NewFromInt(-1))
		assert.ErrorIs(t, err, shared.ErrInsufficientFunds)
	})
}

package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailpos/backend/internal/domain/finance"
)

func TestGormTransactionManager_Commit(t *testing.T) {
	db := newTestDB(t)
	tm := NewGormTransactionManager(db)
	repo := NewGormBalanceOperationRepository(db)
	ctx := context.Background()

	err := tm.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := repo.Append(ctx, finance.NewBalanceOperation(decimal.NewFromInt(10))); err != nil {
			return err
		}
		return repo.Append(ctx, finance.NewBalanceOperation(decimal.NewFromInt(5)))
	})
	require.NoError(t, err)

	sum, err := repo.Sum(ctx)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(15)))
}

func TestGormTransactionManager_RollbackOnError(t *testing.T) {
	db := newTestDB(t)
	tm := NewGormTransactionManager(db)
	repo := NewGormBalanceOperationRepository(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := tm.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := repo.Append(ctx, finance.NewBalanceOperation(decimal.NewFromInt(10))); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// The append inside the failed transaction must not survive
	sum, err := repo.Sum(ctx)
	require.NoError(t, err)
	assert.True(t, sum.IsZero())
}

func TestGormTransactionManager_NestedCallsJoin(t *testing.T) {
	db := newTestDB(t)
	tm := NewGormTransactionManager(db)
	repo := NewGormBalanceOperationRepository(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := tm.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := repo.Append(ctx, finance.NewBalanceOperation(decimal.NewFromInt(10))); err != nil {
			return err
		}
		// Inner call joins the outer transaction, so the outer failure
		// rolls back both appends.
		if err := tm.WithinTransaction(ctx, func(ctx context.Context) error {
			return repo.Append(ctx, finance.NewBalanceOperation(decimal.NewFromInt(20)))
		}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	sum, err := repo.Sum(ctx)
	require.NoError(t, err)
	assert.True(t, sum.IsZero())
}

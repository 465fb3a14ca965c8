package persistence

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
)

// GormBalanceOperationRepository implements finance.BalanceOperationRepository
// using GORM. The ledger is append-only: the repository exposes no update
// or delete.
type GormBalanceOperationRepository struct {
	db *gorm.DB
}

// NewGormBalanceOperationRepository creates a new GormBalanceOperationRepository
func NewGormBalanceOperationRepository(db *gorm.DB) *GormBalanceOperationRepository {
	return &GormBalanceOperationRepository{db: db}
}

// Append inserts a new ledger entry
func (r *GormBalanceOperationRepository) Append(ctx context.Context, op *finance.BalanceOperation) error {
	model := models.BalanceOperationModelFromDomain(op)
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return shared.NewPersistenceError(err)
	}
	return nil
}

// Sum returns the running balance over all entries
func (r *GormBalanceOperationRepository) Sum(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := dbFromContext(ctx, r.db).
		Model(&models.BalanceOperationModel{}).
		Select("SUM(money)").
		Scan(&sum).Error; err != nil {
		return decimal.Zero, shared.NewPersistenceError(err)
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// FindBetween returns entries whose date falls inside the inclusive range;
// a nil bound leaves that side open.
func (r *GormBalanceOperationRepository) FindBetween(ctx context.Context, from, to *time.Time) ([]finance.BalanceOperation, error) {
	query := dbFromContext(ctx, r.db).Model(&models.BalanceOperationModel{})
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}
	query = query.Order("date ASC")

	var opModels []models.BalanceOperationModel
	if err := query.Find(&opModels).Error; err != nil {
		return nil, shared.NewPersistenceError(err)
	}

	ops := make([]finance.BalanceOperation, len(opModels))
	for i, model := range opModels {
		ops[i] = *model.ToDomain()
	}
	return ops, nil
}

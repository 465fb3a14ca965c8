package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
)

// GormReturnTransactionRepository implements trade.ReturnTransactionRepository using GORM
type GormReturnTransactionRepository struct {
	db *gorm.DB
}

// NewGormReturnTransactionRepository creates a new GormReturnTransactionRepository
func NewGormReturnTransactionRepository(db *gorm.DB) *GormReturnTransactionRepository {
	return &GormReturnTransactionRepository{db: db}
}

// FindByID finds a return with its lines
func (r *GormReturnTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.ReturnTransaction, error) {
	var model models.ReturnTransactionModel
	if err := dbFromContext(ctx, r.db).
		Preload("Lines").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewPersistenceError(err)
	}
	return model.ToDomain(), nil
}

// FindBySale finds all returns opened against a sale
func (r *GormReturnTransactionRepository) FindBySale(ctx context.Context, saleID uuid.UUID) ([]trade.ReturnTransaction, error) {
	var returnModels []models.ReturnTransactionModel
	if err := dbFromContext(ctx, r.db).
		Preload("Lines").
		Where("sale_id = ?", saleID).
		Order("created_at ASC").
		Find(&returnModels).Error; err != nil {
		return nil, shared.NewPersistenceError(err)
	}

	returns := make([]trade.ReturnTransaction, len(returnModels))
	for i, model := range returnModels {
		returns[i] = *model.ToDomain()
	}
	return returns, nil
}

// Save creates or updates a return together with its lines
func (r *GormReturnTransactionRepository) Save(ctx context.Context, ret *trade.ReturnTransaction) error {
	db := dbFromContext(ctx, r.db)
	model := models.ReturnTransactionModelFromDomain(ret)

	keep := make([]uuid.UUID, 0, len(model.Lines))
	for _, l := range model.Lines {
		keep = append(keep, l.ID)
	}
	cleanup := db.Where("return_id = ?", ret.ID)
	if len(keep) > 0 {
		cleanup = cleanup.Where("id NOT IN ?", keep)
	}
	if err := cleanup.Delete(&models.ReturnLineModel{}).Error; err != nil {
		return shared.NewPersistenceError(err)
	}

	if err := db.Session(&gorm.Session{FullSaveAssociations: true}).Save(model).Error; err != nil {
		return shared.NewPersistenceError(err)
	}
	return nil
}

// Delete deletes a return; its lines go with it
func (r *GormReturnTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := dbFromContext(ctx, r.db)
	if err := db.Where("return_id = ?", id).Delete(&models.ReturnLineModel{}).Error; err != nil {
		return shared.NewPersistenceError(err)
	}
	result := db.Delete(&models.ReturnTransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return shared.NewPersistenceError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumReturnedForSale totals the already-returned units of a product across
// the returns of a sale, excluding one return (uuid.Nil excludes none).
func (r *GormReturnTransactionRepository) SumReturnedForSale(ctx context.Context, saleID uuid.UUID, barcode string, excludeReturnID uuid.UUID) (int, error) {
	query := dbFromContext(ctx, r.db).
		Model(&models.ReturnLineModel{}).
		Joins("JOIN return_transactions ON return_transactions.id = return_lines.return_id").
		Where("return_transactions.sale_id = ? AND return_lines.barcode = ?", saleID, barcode)
	if excludeReturnID != uuid.Nil {
		query = query.Where("return_lines.return_id <> ?", excludeReturnID)
	}

	var sum *int64
	if err := query.Select("SUM(return_lines.amount)").Scan(&sum).Error; err != nil {
		return 0, shared.NewPersistenceError(err)
	}
	if sum == nil {
		return 0, nil
	}
	return int(*sum), nil
}

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

// GormSaleTransactionRepository implements trade.SaleTransactionRepository using GORM
type GormSaleTransactionRepository struct {
	db *gorm.DB
}

// NewGormSaleTransactionRepository creates a new GormSaleTransactionRepository
func NewGormSaleTransactionRepository(db *gorm.DB) *GormSaleTransactionRepository {
	return &GormSaleTransactionRepository{db: db}
}

// FindByID finds a sale with its ticket entries
func (r *GormSaleTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SaleTransaction, error) {
	var model models.SaleTransactionModel
	if err := dbFromContext(ctx, r.db).
		Preload("Entries").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewPersistenceError(err)
	}
	return model.ToDomain(), nil
}

// FindAll finds all sales matching the filter
func (r *GormSaleTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.SaleTransaction, error) {
	query := applyFilter(dbFromContext(ctx, r.db).Model(&models.SaleTransactionModel{}), filter, TransactionSortFields, "created_at")
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	query = query.Preload("Entries")

	var saleModels []models.SaleTransactionModel
	if err := query.Find(&saleModels).Error; err != nil {
		return nil, shared.NewPersistenceError(err)
	}

	sales := make([]trade.SaleTransaction, len(saleModels))
	for i, model := range saleModels {
		sales[i] = *model.ToDomain()
	}
	return sales, nil
}

// Save creates or updates a sale together with its ticket entries. Stale
// lines are removed so the stored ticket always mirrors the aggregate.
func (r *GormSaleTransactionRepository) Save(ctx context.Context, sale *trade.SaleTransaction) error {
	db := dbFromContext(ctx, r.db)
	model := models.SaleTransactionModelFromDomain(sale)

	keep := make([]uuid.UUID, 0, len(model.Entries))
	for _, e := range model.Entries {
		keep = append(keep, e.ID)
	}
	cleanup := db.Where("sale_id = ?", sale.ID)
	if len(keep) > 0 {
		cleanup = cleanup.Where("id NOT IN ?", keep)
	}
	if err := cleanup.Delete(&models.TicketEntryModel{}).Error; err != nil {
		return shared.NewPersistenceError(err)
	}

	if err := db.Session(&gorm.Session{FullSaveAssociations: true}).Save(model).Error; err != nil {
		return shared.NewPersistenceError(err)
	}
	return nil
}

// Delete deletes a sale; its ticket entries go with it
func (r *GormSaleTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := dbFromContext(ctx, r.db)
	if err := db.Where("sale_id = ?", id).Delete(&models.TicketEntryModel{}).Error; err != nil {
		return shared.NewPersistenceError(err)
	}
	result := db.Delete(&models.SaleTransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return shared.NewPersistenceError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts sales matching the filter
func (r *GormSaleTransactionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	query := dbFromContext(ctx, r.db).Model(&models.SaleTransactionModel{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, shared.NewPersistenceError(err)
	}
	return count, nil
}

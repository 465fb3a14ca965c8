package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductType, error) {
	var model models.ProductModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewPersistenceError(err)
	}
	return model.ToDomain(), nil
}

// FindByCode finds a product by its barcode
func (r *GormProductRepository) FindByCode(ctx context.Context, code catalog.Barcode) (*catalog.ProductType, error) {
	var model models.ProductModel
	if err := dbFromContext(ctx, r.db).
		Where("code = ?", string(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewPersistenceError(err)
	}
	return model.ToDomain(), nil
}

// SearchByDescription finds products whose description contains the text,
// case-insensitive. An empty text matches every product.
func (r *GormProductRepository) SearchByDescription(ctx context.Context, text string) ([]catalog.ProductType, error) {
	query := dbFromContext(ctx, r.db).Model(&models.ProductModel{})
	if text != "" {
		pattern := "%" + strings.ToLower(text) + "%"
		query = query.Where("LOWER(description) LIKE ?", pattern)
	}
	query = query.Order("description ASC")

	var productModels []models.ProductModel
	if err := query.Find(&productModels).Error; err != nil {
		return nil, shared.NewPersistenceError(err)
	}

	products := make([]catalog.ProductType, len(productModels))
	for i, model := range productModels {
		products[i] = *model.ToDomain()
	}
	return products, nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.ProductType, error) {
	query := applyFilter(dbFromContext(ctx, r.db).Model(&models.ProductModel{}), filter, ProductSortFields, "description")
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(description) LIKE ? OR code LIKE ?", pattern, "%"+filter.Search+"%")
	}

	var productModels []models.ProductModel
	if err := query.Find(&productModels).Error; err != nil {
		return nil, shared.NewPersistenceError(err)
	}

	products := make([]catalog.ProductType, len(productModels))
	for i, model := range productModels {
		products[i] = *model.ToDomain()
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.ProductType) error {
	model := models.ProductModelFromDomain(product)
	if err := dbFromContext(ctx, r.db).Save(model).Error; err != nil {
		return shared.NewPersistenceError(err)
	}
	return nil
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return shared.NewPersistenceError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByCode reports whether another product already uses the barcode
func (r *GormProductRepository) ExistsByCode(ctx context.Context, code catalog.Barcode, excludeID uuid.UUID) (bool, error) {
	var count int64
	if err := dbFromContext(ctx, r.db).
		Model(&models.ProductModel{}).
		Where("code = ? AND id <> ?", string(code), excludeID).
		Count(&count).Error; err != nil {
		return false, shared.NewPersistenceError(err)
	}
	return count > 0, nil
}

// ExistsByPosition reports whether another product already occupies the shelf position
func (r *GormProductRepository) ExistsByPosition(ctx context.Context, position catalog.Position, excludeID uuid.UUID) (bool, error) {
	if !position.IsSet() {
		return false, nil
	}
	var count int64
	if err := dbFromContext(ctx, r.db).
		Model(&models.ProductModel{}).
		Where("position = ? AND id <> ?", string(position), excludeID).
		Count(&count).Error; err != nil {
		return false, shared.NewPersistenceError(err)
	}
	return count > 0, nil
}

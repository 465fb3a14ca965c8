package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
)

// GormCustomerRepository implements partner.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	var model models.CustomerModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewPersistenceError(err)
	}
	return model.ToDomain(), nil
}

// FindByCard finds the customer holding a loyalty card
func (r *GormCustomerRepository) FindByCard(ctx context.Context, card partner.LoyaltyCard) (*partner.Customer, error) {
	if card == "" {
		return nil, shared.ErrNotFound
	}
	var model models.CustomerModel
	if err := dbFromContext(ctx, r.db).
		Where("card = ?", string(card)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewPersistenceError(err)
	}
	return model.ToDomain(), nil
}

// FindAll finds all customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	query := applyFilter(dbFromContext(ctx, r.db).Model(&models.CustomerModel{}), filter, CustomerSortFields, "name")
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", pattern)
	}

	var customerModels []models.CustomerModel
	if err := query.Find(&customerModels).Error; err != nil {
		return nil, shared.NewPersistenceError(err)
	}

	customers := make([]partner.Customer, len(customerModels))
	for i, model := range customerModels {
		customers[i] = *model.ToDomain()
	}
	return customers, nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	if err := dbFromContext(ctx, r.db).Save(model).Error; err != nil {
		return shared.NewPersistenceError(err)
	}
	return nil
}

// Delete deletes a customer
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).Delete(&models.CustomerModel{}, "id = ?", id)
	if result.Error != nil {
		return shared.NewPersistenceError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByCard reports whether another customer already holds the card
func (r *GormCustomerRepository) ExistsByCard(ctx context.Context, card partner.LoyaltyCard, excludeID uuid.UUID) (bool, error) {
	if card == "" {
		return false, nil
	}
	var count int64
	if err := dbFromContext(ctx, r.db).
		Model(&models.CustomerModel{}).
		Where("card = ? AND id <> ?", string(card), excludeID).
		Count(&count).Error; err != nil {
		return false, shared.NewPersistenceError(err)
	}
	return count > 0, nil
}

package catalog

import (
	"strings"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ProductType represents one sellable product in the catalog.
// It is the aggregate root for inventory operations: every quantity change,
// whatever transaction drives it, goes through AdjustQuantity.
type ProductType struct {
	shared.BaseAggregateRoot
	Code         Barcode
	Description  string
	PricePerUnit decimal.Decimal
	Quantity     int
	Notes        string
	Position     Position
}

// NewProductType creates a product with zero quantity and no shelf position
func NewProductType(code, description string, pricePerUnit decimal.Decimal, notes string) (*ProductType, error) {
	barcode, err := ParseBarcode(code)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if pricePerUnit.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price per unit must be positive")
	}

	product := &ProductType{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              barcode,
		Description:       description,
		PricePerUnit:      pricePerUnit,
		Quantity:          0,
		Notes:             notes,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update replaces the descriptive fields of the product. Quantity and
// position are managed by their dedicated operations.
func (p *ProductType) Update(code, description string, pricePerUnit decimal.Decimal, notes string) error {
	barcode, err := ParseBarcode(code)
	if err != nil {
		return err
	}
	if strings.TrimSpace(description) == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if pricePerUnit.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PRICE", "Price per unit must be positive")
	}

	p.Code = barcode
	p.Description = description
	p.PricePerUnit = pricePerUnit
	p.Notes = notes
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetPosition assigns a shelf location. An empty string clears it; position
// uniqueness across products is enforced by the repository lookup in the
// application layer.
func (p *ProductType) SetPosition(position string) error {
	pos, err := ParsePosition(position)
	if err != nil {
		return err
	}
	p.Position = pos
	p.Touch()
	p.IncrementVersion()
	return nil
}

// AdjustQuantity applies a signed stock delta. It fails when the product has
// no shelf position or when the result would be negative, so the
// quantity >= 0 and "shelved before movement" invariants hold no matter
// which transaction initiated the change.
func (p *ProductType) AdjustQuantity(delta int) error {
	if !p.Position.IsSet() {
		return shared.NewDomainError("INVALID_LOCATION", "Product has no shelf position assigned")
	}
	if p.Quantity+delta < 0 {
		return shared.ErrInsufficientStock
	}

	p.Quantity += delta
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewStockAdjustedEvent(p, delta))

	return nil
}

// UnitPriceMoney returns the unit price as a Money value object
func (p *ProductType) UnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(p.PricePerUnit)
}

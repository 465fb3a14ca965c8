package models

import (
	"github.com/shopspring/decimal"

	"github.com/retailpos/backend/internal/domain/catalog"
)

// ProductModel is the persistence model for the ProductType domain entity.
type ProductModel struct {
	AggregateModel
	Code         string          `gorm:"type:varchar(14);not null;uniqueIndex"`
	Description  string          `gorm:"type:varchar(200);not null;index"`
	PricePerUnit decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Quantity     int             `gorm:"not null;default:0"`
	Notes        string          `gorm:"type:text"`
	Position     string          `gorm:"type:varchar(100);index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain ProductType entity.
func (m *ProductModel) ToDomain() *catalog.ProductType {
	product := &catalog.ProductType{
		Code:         catalog.Barcode(m.Code),
		Description:  m.Description,
		PricePerUnit: m.PricePerUnit,
		Quantity:     m.Quantity,
		Notes:        m.Notes,
		Position:     catalog.Position(m.Position),
	}
	m.PopulateAggregateRoot(&product.BaseAggregateRoot)
	return product
}

// FromDomain populates the persistence model from a domain ProductType entity.
func (m *ProductModel) FromDomain(p *catalog.ProductType) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Code = string(p.Code)
	m.Description = p.Description
	m.PricePerUnit = p.PricePerUnit
	m.Quantity = p.Quantity
	m.Notes = p.Notes
	m.Position = string(p.Position)
}

// ProductModelFromDomain creates a new persistence model from a domain ProductType.
func ProductModelFromDomain(p *catalog.ProductType) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

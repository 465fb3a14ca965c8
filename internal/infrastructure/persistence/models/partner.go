package models

import (
	"github.com/retailpos/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer domain entity.
// Card is stored as a plain string; the empty string means no card and is
// deliberately not unique-indexed, card uniqueness is checked per query.
type CustomerModel struct {
	AggregateModel
	Name   string `gorm:"type:varchar(200);not null"`
	Card   string `gorm:"type:varchar(10);index"`
	Points int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	customer := &partner.Customer{
		Name:   m.Name,
		Card:   partner.LoyaltyCard(m.Card),
		Points: m.Points,
	}
	m.PopulateAggregateRoot(&customer.BaseAggregateRoot)
	return customer
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Card = string(c.Card)
	m.Points = c.Points
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

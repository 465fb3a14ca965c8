package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/retailpos/backend/internal/domain/finance"
)

// BalanceOperationModel is the persistence model for ledger entries.
// The table is append-only; rows are never updated or deleted.
type BalanceOperationModel struct {
	AggregateModel
	Date  time.Time       `gorm:"not null;index"`
	Money decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Type  string          `gorm:"type:varchar(10);not null"`
}

// TableName returns the table name for GORM
func (BalanceOperationModel) TableName() string {
	return "balance_operations"
}

// ToDomain converts the persistence model to a domain BalanceOperation.
func (m *BalanceOperationModel) ToDomain() *finance.BalanceOperation {
	op := &finance.BalanceOperation{
		Date:  m.Date,
		Money: m.Money,
		Type:  finance.OperationType(m.Type),
	}
	m.PopulateAggregateRoot(&op.BaseAggregateRoot)
	return op
}

// FromDomain populates the persistence model from a domain BalanceOperation.
func (m *BalanceOperationModel) FromDomain(op *finance.BalanceOperation) {
	m.FromDomainAggregateRoot(op.BaseAggregateRoot)
	m.Date = op.Date
	m.Money = op.Money
	m.Type = string(op.Type)
}

// BalanceOperationModelFromDomain creates a new persistence model from a domain entry.
func BalanceOperationModelFromDomain(op *finance.BalanceOperation) *BalanceOperationModel {
	m := &BalanceOperationModel{}
	m.FromDomain(op)
	return m
}

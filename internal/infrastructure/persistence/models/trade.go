package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailpos/backend/internal/domain/trade"
)

// SaleTransactionModel is the persistence model for the SaleTransaction aggregate.
type SaleTransactionModel struct {
	AggregateModel
	Entries       []TicketEntryModel `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	DiscountRate  decimal.Decimal    `gorm:"type:decimal(6,4);not null;default:0"`
	Status        string             `gorm:"type:varchar(10);not null;index"`
	Total         decimal.Decimal    `gorm:"type:decimal(20,4);not null;default:0"`
	PaymentMethod string             `gorm:"type:varchar(10)"`
}

// TableName returns the table name for GORM
func (SaleTransactionModel) TableName() string {
	return "sale_transactions"
}

// TicketEntryModel is the persistence model for a sale line.
type TicketEntryModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	SaleID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Barcode      string          `gorm:"type:varchar(14);not null;index"`
	Description  string          `gorm:"type:varchar(200);not null"`
	Amount       int             `gorm:"not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	DiscountRate decimal.Decimal `gorm:"type:decimal(6,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (TicketEntryModel) TableName() string {
	return "ticket_entries"
}

// ToDomain converts the persistence model to a domain SaleTransaction.
func (m *SaleTransactionModel) ToDomain() *trade.SaleTransaction {
	entries := make([]trade.TicketEntry, 0, len(m.Entries))
	for _, e := range m.Entries {
		entries = append(entries, trade.TicketEntry{
			ID:           e.ID,
			SaleID:       e.SaleID,
			Barcode:      e.Barcode,
			Description:  e.Description,
			Amount:       e.Amount,
			UnitPrice:    e.UnitPrice,
			DiscountRate: e.DiscountRate,
		})
	}

	sale := &trade.SaleTransaction{
		Entries:       entries,
		DiscountRate:  m.DiscountRate,
		Status:        trade.TransactionStatus(m.Status),
		Total:         m.Total,
		PaymentMethod: trade.PaymentMethod(m.PaymentMethod),
	}
	m.PopulateAggregateRoot(&sale.BaseAggregateRoot)
	return sale
}

// FromDomain populates the persistence model from a domain SaleTransaction.
func (m *SaleTransactionModel) FromDomain(s *trade.SaleTransaction) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.DiscountRate = s.DiscountRate
	m.Status = string(s.Status)
	m.Total = s.Total
	m.PaymentMethod = string(s.PaymentMethod)

	m.Entries = make([]TicketEntryModel, 0, len(s.Entries))
	for _, e := range s.Entries {
		m.Entries = append(m.Entries, TicketEntryModel{
			ID:           e.ID,
			SaleID:       s.ID,
			Barcode:      e.Barcode,
			Description:  e.Description,
			Amount:       e.Amount,
			UnitPrice:    e.UnitPrice,
			DiscountRate: e.DiscountRate,
		})
	}
}

// SaleTransactionModelFromDomain creates a new persistence model from a domain sale.
func SaleTransactionModelFromDomain(s *trade.SaleTransaction) *SaleTransactionModel {
	m := &SaleTransactionModel{}
	m.FromDomain(s)
	return m
}

// ReturnTransactionModel is the persistence model for the ReturnTransaction aggregate.
type ReturnTransactionModel struct {
	AggregateModel
	SaleID        uuid.UUID         `gorm:"type:uuid;not null;index"`
	Lines         []ReturnLineModel `gorm:"foreignKey:ReturnID;constraint:OnDelete:CASCADE"`
	Status        string            `gorm:"type:varchar(10);not null;index"`
	Total         decimal.Decimal   `gorm:"type:decimal(20,4);not null;default:0"`
	PaymentMethod string            `gorm:"type:varchar(10)"`
}

// TableName returns the table name for GORM
func (ReturnTransactionModel) TableName() string {
	return "return_transactions"
}

// ReturnLineModel is the persistence model for a return line.
type ReturnLineModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReturnID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Barcode   string          `gorm:"type:varchar(14);not null;index"`
	Amount    int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(20,4);not null"`
}

// TableName returns the table name for GORM
func (ReturnLineModel) TableName() string {
	return "return_lines"
}

// ToDomain converts the persistence model to a domain ReturnTransaction.
func (m *ReturnTransactionModel) ToDomain() *trade.ReturnTransaction {
	lines := make([]trade.ReturnLine, 0, len(m.Lines))
	for _, l := range m.Lines {
		lines = append(lines, trade.ReturnLine{
			ID:        l.ID,
			ReturnID:  l.ReturnID,
			Barcode:   l.Barcode,
			Amount:    l.Amount,
			UnitPrice: l.UnitPrice,
		})
	}

	ret := &trade.ReturnTransaction{
		SaleID:        m.SaleID,
		Lines:         lines,
		Status:        trade.TransactionStatus(m.Status),
		Total:         m.Total,
		PaymentMethod: trade.PaymentMethod(m.PaymentMethod),
	}
	m.PopulateAggregateRoot(&ret.BaseAggregateRoot)
	return ret
}

// FromDomain populates the persistence model from a domain ReturnTransaction.
func (m *ReturnTransactionModel) FromDomain(r *trade.ReturnTransaction) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.SaleID = r.SaleID
	m.Status = string(r.Status)
	m.Total = r.Total
	m.PaymentMethod = string(r.PaymentMethod)

	m.Lines = make([]ReturnLineModel, 0, len(r.Lines))
	for _, l := range r.Lines {
		m.Lines = append(m.Lines, ReturnLineModel{
			ID:        l.ID,
			ReturnID:  r.ID,
			Barcode:   l.Barcode,
			Amount:    l.Amount,
			UnitPrice: l.UnitPrice,
		})
	}
}

// ReturnTransactionModelFromDomain creates a new persistence model from a domain return.
func ReturnTransactionModelFromDomain(r *trade.ReturnTransaction) *ReturnTransactionModel {
	m := &ReturnTransactionModel{}
	m.FromDomain(r)
	return m
}

// PurchaseOrderModel is the persistence model for the PurchaseOrder aggregate.
type PurchaseOrderModel struct {
	AggregateModel
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductCode  string          `gorm:"type:varchar(14);not null;index"`
	Quantity     int             `gorm:"not null"`
	PricePerUnit decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Status       string          `gorm:"type:varchar(10);not null;index"`
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// ToDomain converts the persistence model to a domain PurchaseOrder.
func (m *PurchaseOrderModel) ToDomain() *trade.PurchaseOrder {
	order := &trade.PurchaseOrder{
		ProductID:    m.ProductID,
		ProductCode:  m.ProductCode,
		Quantity:     m.Quantity,
		PricePerUnit: m.PricePerUnit,
		Status:       trade.OrderStatus(m.Status),
	}
	m.PopulateAggregateRoot(&order.BaseAggregateRoot)
	return order
}

// FromDomain populates the persistence model from a domain PurchaseOrder.
func (m *PurchaseOrderModel) FromDomain(o *trade.PurchaseOrder) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.ProductID = o.ProductID
	m.ProductCode = o.ProductCode
	m.Quantity = o.Quantity
	m.PricePerUnit = o.PricePerUnit
	m.Status = string(o.Status)
}

// PurchaseOrderModelFromDomain creates a new persistence model from a domain order.
func PurchaseOrderModelFromDomain(o *trade.PurchaseOrder) *PurchaseOrderModel {
	m := &PurchaseOrderModel{}
	m.FromDomain(o)
	return m
}

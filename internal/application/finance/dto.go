package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailpos/backend/internal/domain/finance"
)

// RecordBalanceUpdateRequest represents a manual credit or debit of the
// shop balance
type RecordBalanceUpdateRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// BalanceOperationResponse represents one ledger entry in API responses
type BalanceOperationResponse struct {
	ID    uuid.UUID       `json:"id"`
	Date  time.Time       `json:"date"`
	Money decimal.Decimal `json:"money"`
	Type  string          `json:"type"`
}

// BalanceResponse represents the current running balance
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// NewBalanceOperationResponse converts a domain ledger entry into a
// response DTO
func NewBalanceOperationResponse(op *finance.BalanceOperation) BalanceOperationResponse {
	return BalanceOperationResponse{
		ID:    op.ID,
		Date:  op.Date,
		Money: op.Money,
		Type:  string(op.Type),
	}
}

// NewBalanceOperationResponses converts a slice of ledger entries
func NewBalanceOperationResponses(ops []finance.BalanceOperation) []BalanceOperationResponse {
	responses := make([]BalanceOperationResponse, len(ops))
	for i := range ops {
		responses[i] = NewBalanceOperationResponse(&ops[i])
	}
	return responses
}

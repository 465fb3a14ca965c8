package finance

import (
	"github.com/retailpos/backend/internal/domain/shared"
)

// Aggregate type constant for BalanceOperation
const AggregateTypeBalanceOperation = "BalanceOperation"

// Finance domain event types
const (
	EventTypeBalanceRecorded = "BalanceRecorded"
)

// BalanceRecordedEvent is published when a ledger entry is appended
type BalanceRecordedEvent struct {
	shared.BaseDomainEvent
	Amount        string        `json:"amount"`
	OperationType OperationType `json:"operation_type"`
}

// NewBalanceRecordedEvent creates a new BalanceRecordedEvent
func NewBalanceRecordedEvent(op *BalanceOperation) *BalanceRecordedEvent {
	return &BalanceRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBalanceRecorded, AggregateTypeBalanceOperation, op.ID),
		Amount:          op.Money.String(),
		OperationType:   op.Type,
	}
}

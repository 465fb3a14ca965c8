package finance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/shared"
)

// LedgerService handles the append-only cash ledger. Manual updates are
// restricted to Administrator and ShopManager; the trade services post
// through the internal path when payments settle.
type LedgerService struct {
	opRepo finance.BalanceOperationRepository
	tm     shared.TransactionManager
	logger *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(opRepo finance.BalanceOperationRepository, tm shared.TransactionManager, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		opRepo: opRepo,
		tm:     tm,
		logger: logger,
	}
}

// RecordBalanceUpdate appends a manual credit or debit. A debit that would
// drive the running balance negative is rejected and nothing is written.
func (s *LedgerService) RecordBalanceUpdate(ctx context.Context, p *identity.Principal, req RecordBalanceUpdateRequest) (*BalanceOperationResponse, error) {
	if err := identity.Authorize(p, identity.LedgerAccess); err != nil {
		return nil, err
	}

	op, err := s.post(ctx, req.Amount)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Balance updated",
		zap.String("amount", req.Amount.String()),
		zap.String("type", string(op.Type)),
		zap.String("recorded_by", p.Username),
	)

	resp := NewBalanceOperationResponse(op)
	return &resp, nil
}

// Balance returns the running sum of all ledger entries
func (s *LedgerService) Balance(ctx context.Context, p *identity.Principal) (*BalanceResponse, error) {
	if err := identity.Authorize(p, identity.LedgerAccess); err != nil {
		return nil, err
	}

	sum, err := s.opRepo.Sum(ctx)
	if err != nil {
		return nil, err
	}
	return &BalanceResponse{Balance: sum}, nil
}

// EntriesBetween returns ledger entries inside an inclusive date range,
// oldest first. Either bound may be nil, and swapped bounds are reordered.
func (s *LedgerService) EntriesBetween(ctx context.Context, p *identity.Principal, from, to *time.Time) ([]BalanceOperationResponse, error) {
	if err := identity.Authorize(p, identity.LedgerAccess); err != nil {
		return nil, err
	}

	from, to = finance.NormalizeRange(from, to)
	ops, err := s.opRepo.FindBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return NewBalanceOperationResponses(ops), nil
}

// Post appends a signed amount on behalf of the trade services. It is an
// internal entry point and carries no authorization of its own; the
// non-negative balance invariant still holds.
func (s *LedgerService) Post(ctx context.Context, amount decimal.Decimal) error {
	_, err := s.post(ctx, amount)
	return err
}

// post runs the balance check and the append inside one transaction so a
// concurrent debit cannot slip the balance below zero between them.
func (s *LedgerService) post(ctx context.Context, amount decimal.Decimal) (*finance.BalanceOperation, error) {
	op := finance.NewBalanceOperation(amount)

	err := s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		sum, err := s.opRepo.Sum(ctx)
		if err != nil {
			return err
		}
		if sum.Add(amount).IsNegative() {
			return shared.ErrInsufficientFunds
		}
		return s.opRepo.Append(ctx, op)
	})
	if err != nil {
		return nil, err
	}
	return op, nil
}

package trade

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/retailpos/backend/internal/domain/trade"
)

// ReturnService drives returns of paid sales. A return mirrors the sale
// lifecycle but refunds at full unit price; committing re-credits stock and
// refunding debits the ledger, each atomically with the status flip.
type ReturnService struct {
	returnRepo trade.ReturnTransactionRepository
	saleRepo   trade.SaleTransactionRepository
	catalog    CatalogGateway
	ledger     LedgerGateway
	tm         shared.TransactionManager
	logger     *zap.Logger
}

// NewReturnService creates a new ReturnService
func NewReturnService(
	returnRepo trade.ReturnTransactionRepository,
	saleRepo trade.SaleTransactionRepository,
	catalogGW CatalogGateway,
	ledgerGW LedgerGateway,
	tm shared.TransactionManager,
	logger *zap.Logger,
) *ReturnService {
	return &ReturnService{
		returnRepo: returnRepo,
		saleRepo:   saleRepo,
		catalog:    catalogGW,
		ledger:     ledgerGW,
		tm:         tm,
		logger:     logger,
	}
}

// Open starts a return against a sale. Only paid sales can be returned
// against; the sale itself is never modified.
func (s *ReturnService) Open(ctx context.Context, p *identity.Principal, req OpenReturnRequest) (*ReturnResponse, error) {
	if err := identity.Authorize(p, identity.TransactionAccess); err != nil {
		return nil, err
	}

	sale, err := s.saleRepo.FindByID(ctx, req.SaleID)
	if err != nil {
		return nil, err
	}
	if sale.Status != trade.StatusPaid {
		return nil, shared.NewDomainError("INVALID_STATE", "Returns can only be opened against a paid sale")
	}

	ret, err := trade.NewReturnTransaction(sale.ID)
	if err != nil {
		return nil, err
	}
	if err := s.returnRepo.Save(ctx, ret); err != nil {
		return nil, err
	}

	s.logger.Info("Return opened",
		zap.String("return_id", ret.ID.String()),
		zap.String("sale_id", sale.ID.String()),
		zap.String("opened_by", p.Username),
	)

	resp := NewReturnResponse(ret)
	return &resp, nil
}

// AddProduct registers returned units of a product. The amount is bounded
// by what the sale sold minus what other returns already took back.
func (s *ReturnService) AddProduct(ctx context.Context, p *identity.Principal, returnID uuid.UUID, req ReturnLineRequest) (*ReturnResponse, error) {
	if err := identity.Authorize(p, identity.TransactionAccess); err != nil {
		return nil, err
	}
	if returnID == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	ret, err := s.returnRepo.FindByID(ctx, returnID)
	if err != nil {
		return nil, err
	}
	sale, err := s.saleRepo.FindByID(ctx, ret.SaleID)
	if err != nil {
		return nil, err
	}

	entry := sale.GetEntry(req.Barcode)
	if entry == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product was not part of the sale")
	}

	already, err := s.returnRepo.SumReturnedForSale(ctx, sale.ID, req.Barcode, ret.ID)
	if err != nil {
		return nil, err
	}

	if err := ret.AddLine(req.Barcode, req.Amount, entry.UnitPrice, entry.Amount-already); err != nil {
		return nil, err
	}
	if err := s.returnRepo.Save(ctx, ret); err != nil {
		return nil, err
	}

	resp := NewReturnResponse(ret)
	return &resp, nil
}

// Close commits or aborts an open return. Commit fixes the refund total and
// re-credits the stock of every line in one transaction; abort deletes the
// return without touching stock.
func (s *ReturnService) Close(ctx context.Context, p *identity.Principal, returnID uuid.UUID, req CloseReturnRequest) (*ReturnResponse, error) {
	if err := identity.Authorize(p, identity.TransactionAccess); err != nil {
		return nil, err
	}
	if returnID == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	ret, err := s.returnRepo.FindByID(ctx, returnID)
	if err != nil {
		return nil, err
	}

	if req.Commit == nil || !*req.Commit {
		if ret.Status != trade.StatusOpen {
			return nil, shared.NewDomainError("INVALID_STATE", "Only an open return can be aborted")
		}
		if err := s.returnRepo.Delete(ctx, ret.ID); err != nil {
			return nil, err
		}
		resp := NewReturnResponse(ret)
		return &resp, nil
	}

	err = s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := ret.Close(); err != nil {
			return err
		}
		if err := s.restock(ctx, ret, 1); err != nil {
			return err
		}
		return s.returnRepo.Save(ctx, ret)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Return committed",
		zap.String("return_id", ret.ID.String()),
		zap.String("total", ret.Total.String()),
	)

	resp := NewReturnResponse(ret)
	return &resp, nil
}

// Pay refunds a committed return, debiting the ledger by its total. A
// refund the balance cannot cover is rejected and the return stays CLOSED.
func (s *ReturnService) Pay(ctx context.Context, p *identity.Principal, returnID uuid.UUID, req RefundRequest) (*ReturnResponse, error) {
	if err := identity.Authorize(p, identity.TransactionAccess); err != nil {
		return nil, err
	}
	if returnID == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	method := trade.PaymentMethod(req.Method)
	if method == trade.PaymentCard {
		if _, err := valueobject.NewCreditCard(req.CardNumber); err != nil {
			return nil, shared.NewDomainError("INVALID_CARD_NUMBER", "Card number failed validation")
		}
	}

	var ret *trade.ReturnTransaction
	err := s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		ret, err = s.returnRepo.FindByID(ctx, returnID)
		if err != nil {
			return err
		}
		if err := ret.MarkPaid(method); err != nil {
			return err
		}
		if err := s.ledger.Post(ctx, ret.Total.Neg()); err != nil {
			return err
		}
		return s.returnRepo.Save(ctx, ret)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Return refunded",
		zap.String("return_id", ret.ID.String()),
		zap.String("method", string(method)),
		zap.String("total", ret.Total.String()),
	)

	resp := NewReturnResponse(ret)
	return &resp, nil
}

// Delete discards a return that was never refunded. Deleting a committed
// return takes its re-credited stock back out in the same transaction.
func (s *ReturnService) Delete(ctx context.Context, p *identity.Principal, returnID uuid.UUID) error {
	if err := identity.Authorize(p, identity.TransactionAccess); err != nil {
		return err
	}
	if returnID == uuid.Nil {
		return shared.ErrInvalidIdentifier
	}

	err := s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		ret, err := s.returnRepo.FindByID(ctx, returnID)
		if err != nil {
			return err
		}
		if !ret.CanDelete() {
			return shared.NewDomainError("INVALID_STATE", "A refunded return cannot be deleted")
		}

		if ret.Status == trade.StatusClosed {
			if err := s.restock(ctx, ret, -1); err != nil {
				return err
			}
		}
		return s.returnRepo.Delete(ctx, ret.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Return deleted",
		zap.String("return_id", returnID.String()),
		zap.String("deleted_by", p.Username),
	)
	return nil
}

// Get returns a return transaction by ID
func (s *ReturnService) Get(ctx context.Context, p *identity.Principal, returnID uuid.UUID) (*ReturnResponse, error) {
	if err := identity.Authorize(p, identity.TransactionAccess); err != nil {
		return nil, err
	}
	if returnID == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	ret, err := s.returnRepo.FindByID(ctx, returnID)
	if err != nil {
		return nil, err
	}

	resp := NewReturnResponse(ret)
	return &resp, nil
}

// ListBySale returns every return opened against a sale
func (s *ReturnService) ListBySale(ctx context.Context, p *identity.Principal, saleID uuid.UUID) ([]ReturnResponse, error) {
	if err := identity.Authorize(p, identity.TransactionAccess); err != nil {
		return nil, err
	}
	if saleID == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	rets, err := s.returnRepo.FindBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	return NewReturnResponses(rets), nil
}

// restock moves the stock of every return line by sign: +1 re-credits on
// commit, -1 takes the credit back when a committed return is deleted.
func (s *ReturnService) restock(ctx context.Context, ret *trade.ReturnTransaction, sign int) error {
	for i := range ret.Lines {
		line := &ret.Lines[i]
		barcode, err := catalog.ParseBarcode(line.Barcode)
		if err != nil {
			return err
		}
		product, err := s.catalog.ProductByCode(ctx, barcode)
		if err != nil {
			return err
		}
		if err := s.catalog.AdjustStock(ctx, product.ID, sign*line.Amount); err != nil {
			return err
		}
	}
	return nil
}

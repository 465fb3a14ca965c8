package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/retailpos/backend/internal/domain/trade"
)

// SaleService drives the cart lifecycle: OPEN -> CLOSED -> PAYED. Stock
// moves atomically with the cart, and settling posts the total to the cash
// ledger in the same transaction as the status flip.
type SaleService struct {
	saleRepo trade.SaleTransactionRepository
	catalog  CatalogGateway
	ledger   LedgerGateway
	tm       shared.TransactionManager
	idem     shared.IdempotencyStore
	logger   *zap.Logger
}

// NewSaleService creates a new SaleService
func NewSaleService(
	saleRepo trade.SaleTransactionRepository,
	catalogGW CatalogGateway,
	ledgerGW LedgerGateway,
	tm shared.TransactionManager,
	idem shared.IdempotencyStore,
	logger *zap.Logger,
) *SaleService {
	return &SaleService{
		saleRepo: saleRepo,
		catalog:  catalogGW,
		ledger:   ledgerGW,
		tm:       tm,
		idem:     idem,
		logger:   logger,
	}
}

// Open starts an empty sale transaction
func (s *SaleService) Open(ctx context.Context, p *identity.Principal) (*SaleResponse, error) {
	if err := identity.Authorize(p, identity.TransactionAccess); err != nil {
		return nil, err
	}

	sale := trade.NewSaleTransaction()
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	s.logger.Info("Sale opened",
		zap.String("sale_id", sale.ID.String()),
		zap.String("opened_by", p.Username),
	)

	resp := NewSaleResponse(sale)
	return &resp, nil
}

// AddProduct puts units of a product into an open cart. The stock decrement
// and the cart entry commit together or not at all; insufficient stock
// rejects the whole operation.
func (s *SaleService) AddProduct(ctx context.Context, p *identity.Principal, saleID uuid.UUID, req CartItemRequest) (*SaleResponse, error) {
	if err := identity.Authorize(p, identity.TransactionAccess); err != nil {
		return nil, err
	}
	if saleID == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	var sale *trade.SaleTransaction
	err := s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		sale, err = s.saleRepo.FindByID(ctx, saleID)
		if err != nil {
			return err
		}

		barcode, err := catalog.ParseBarcode(req.Barcode)
		if err != nil {
			return err
		}
		product, err := s.catalog.ProductByCode(ctx, barcode)
		if err != nil {
			return err
		}

		if err := s.catalog.AdjustStock(ctx, product.ID, -req.Amount); err != nil {
			return err
		}
		if err := sale.AddEntry(req.Barcode, product.Description, req.Amount, product.PricePerUnit); err != nil {
			return err
		}
		return s.saleRepo.Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	resp := NewSaleResponse(sale)
	return &resp, nil
}

// RemoveProduct takes units of a product out of an open cart, restoring
// stock in the same transaction
func (s *SaleService) RemoveProduct(ctx context.Context, p *identity.Principal, saleID uuid.UUID, req CartItemRequest) (*SaleResponse, error) {
	if err := identity.Authorize(p, identity.TransactionAccess); err != nil {
		return nil, err
	}
	if saleID == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	var sale *trade.SaleTransaction
	err := s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		sale, err = s.saleRepo.FindByID(ctx, saleID)
		if err != nil {
			return err
		}

		barcode, err := catalog.ParseBarcode(req.Barcode)
		if err != nil {
			return err
		}
		product, err := s.catalog.ProductByCode(ctx, barcode)
		if err != nil {
			return err
		}

		if err := sale.RemoveEntry(req.Barcode, req.Amount); err != nil {
			return err
		}
		if err := s.catalog.AdjustStock(ctx, product.ID, req.Amount); err != nil {
			return err
		}
		return s.saleRepo.Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	resp := NewSaleResponse(sale)
	return &resp, nil
}

// SetLineDiscount applies a discount rate to one cart line
func (s *SaleService) SetLineDiscount(ctx context.Context, p *identity.Principal, saleID uuid.UUID, req LineDiscountRequest) (*SaleResponse, error) {
	return s.mutate(ctx, p, saleID, func(sale *trade.SaleTransaction) error {
		return sale.SetLineDiscount(req.Barcode, req.Rate)
	})
}

// SetSaleDiscount applies a discount rate to the whole sale
func (s *SaleService) SetSaleDiscount(ctx context.Context, p *identity.Principal, saleID uuid.UUID, req SaleDiscountRequest) (*SaleResponse, error) {
	return s.mutate(ctx, p, saleID, func(sale *trade.SaleTransaction) error {
		return sale.SetSaleDiscount(req.Rate)
	})
}

// Close fixes the total and moves the sale to CLOSED
func (s *SaleService) Close(ctx context.Context, p *identity.Principal, saleID uuid.UUID) (*SaleResponse, error) {
	return s.mutate(ctx, p, saleID, func(sale *trade.SaleTransaction) error {
		return sale.Close()
	})
}

// PayCash settles a closed sale in cash. The tendered cash must cover the
// total; the response carries the change due.
func (s *SaleService) PayCash(ctx context.Context, p *identity.Principal, saleID uuid.UUID, req CashPaymentRequest) (*PaymentResponse, error) {
	if err := identity.Authorize(p, identity.TransactionAccess); err != nil {
		return nil, err
	}
	if saleID == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	var sale *trade.SaleTransaction
	var change decimal.Decimal
	err := s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		sale, err = s.saleRepo.FindByID(ctx, saleID)
		if err != nil {
			return err
		}

		if req.Cash.LessThan(sale.Total) {
			return shared.NewDomainError("INVALID_PAYMENT", "Cash tendered does not cover the total")
		}
		change = req.Cash.Sub(sale.Total)

		return s.settle(ctx, sale, trade.PaymentCash)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Sale paid",
		zap.String("sale_id", sale.ID.String()),
		zap.String("method", string(trade.PaymentCash)),
		zap.String("total", sale.Total.String()),
	)

	return &PaymentResponse{Sale: NewSaleResponse(sale), Change: change}, nil
}

// PayCard settles a closed sale by card. The card number must pass the Luhn
// check; a replay of an already-settled payment is acknowledged without
// posting to the ledger again.
func (s *SaleService) PayCard(ctx context.Context, p *identity.Principal, saleID uuid.UUID, req CardPaymentRequest) (*PaymentResponse, error) {
	if err := identity.Authorize(p, identity.TransactionAccess); err != nil {
		return nil, err
	}
	if saleID == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	if _, err := valueobject.NewCreditCard(req.CardNumber); err != nil {
		return nil, shared.NewDomainError("INVALID_CARD_NUMBER", "Card number failed validation")
	}

	key := paymentKey(saleID)
	done, err := s.idem.IsProcessed(ctx, key)
	if err != nil {
		return nil, err
	}
	if done {
		sale, err := s.saleRepo.FindByID(ctx, saleID)
		if err != nil {
			return nil, err
		}
		return &PaymentResponse{Sale: NewSaleResponse(sale), Change: decimal.Zero}, nil
	}

	var sale *trade.SaleTransaction
	err = s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		sale, err = s.saleRepo.FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		return s.settle(ctx, sale, trade.PaymentCard)
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.idem.MarkProcessed(ctx, key, shared.DefaultIdempotencyTTL); err != nil {
		// The payment is committed; the key only suppresses replays.
		s.logger.Warn("Failed to record payment idempotency key",
			zap.String("sale_id", saleID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("Sale paid",
		zap.String("sale_id", sale.ID.String()),
		zap.String("method", string(trade.PaymentCard)),
		zap.String("total", sale.Total.String()),
	)

	return &PaymentResponse{Sale: NewSaleResponse(sale), Change: decimal.Zero}, nil
}

// Delete discards a sale that was never paid, restoring the stock of every
// cart line in the same transaction
func (s *SaleService) Delete(ctx context.Context, p *identity.Principal, saleID uuid.UUID) error {
	if err := identity.Authorize(p, identity.TransactionAccess); err != nil {
		return err
	}
	if saleID == uuid.Nil {
		return shared.ErrInvalidIdentifier
	}

	err := s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		sale, err := s.saleRepo.FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		if !sale.CanDelete() {
			return shared.NewDomainError("INVALID_STATE", "A paid sale cannot be deleted")
		}

		for i := range sale.Entries {
			entry := &sale.Entries[i]
			barcode, err := catalog.ParseBarcode(entry.Barcode)
			if err != nil {
				return err
			}
			product, err := s.catalog.ProductByCode(ctx, barcode)
			if err != nil {
				return err
			}
			if err := s.catalog.AdjustStock(ctx, product.ID, entry.Amount); err != nil {
				return err
			}
		}

		return s.saleRepo.Delete(ctx, saleID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Sale deleted",
		zap.String("sale_id", saleID.String()),
		zap.String("deleted_by", p.Username),
	)
	return nil
}

// LoyaltyPoints returns the points a sale is worth: one per full ten
// currency units of the discounted total
func (s *SaleService) LoyaltyPoints(ctx context.Context, p *identity.Principal, saleID uuid.UUID) (int, error) {
	if err := identity.Authorize(p, identity.TransactionAccess); err != nil {
		return 0, err
	}
	if saleID == uuid.Nil {
		return 0, shared.ErrInvalidIdentifier
	}

	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return 0, err
	}
	return sale.LoyaltyPoints(), nil
}

// Get returns a sale by ID
func (s *SaleService) Get(ctx context.Context, p *identity.Principal, saleID uuid.UUID) (*SaleResponse, error) {
	if err := identity.Authorize(p, identity.TransactionAccess); err != nil {
		return nil, err
	}
	if saleID == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	resp := NewSaleResponse(sale)
	return &resp, nil
}

// List returns a page of sales
func (s *SaleService) List(ctx context.Context, p *identity.Principal, filter shared.Filter) ([]SaleResponse, error) {
	if err := identity.Authorize(p, identity.TransactionAccess); err != nil {
		return nil, err
	}

	sales, err := s.saleRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return NewSaleResponses(sales), nil
}

// mutate loads a sale, applies a state change and saves it
func (s *SaleService) mutate(ctx context.Context, p *identity.Principal, saleID uuid.UUID, fn func(*trade.SaleTransaction) error) (*SaleResponse, error) {
	if err := identity.Authorize(p, identity.TransactionAccess); err != nil {
		return nil, err
	}
	if saleID == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if err := fn(sale); err != nil {
		return nil, err
	}
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	resp := NewSaleResponse(sale)
	return &resp, nil
}

// settle flips the sale to PAYED and posts the total to the ledger. Both
// effects ride the surrounding transaction.
func (s *SaleService) settle(ctx context.Context, sale *trade.SaleTransaction, method trade.PaymentMethod) error {
	if err := sale.MarkPaid(method); err != nil {
		return err
	}
	if err := s.ledger.Post(ctx, sale.Total); err != nil {
		return err
	}
	return s.saleRepo.Save(ctx, sale)
}

func paymentKey(saleID uuid.UUID) string {
	return "sale:card:" + saleID.String()
}

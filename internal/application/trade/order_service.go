package trade

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"
)

// OrderService drives supplier procurement: issue -> pay -> receive.
// Paying debits the ledger atomically with the status flip, and arrival
// increments stock before the order turns terminal.
type OrderService struct {
	orderRepo trade.PurchaseOrderRepository
	catalog   CatalogGateway
	ledger    LedgerGateway
	tm        shared.TransactionManager
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo trade.PurchaseOrderRepository,
	catalogGW CatalogGateway,
	ledgerGW LedgerGateway,
	tm shared.TransactionManager,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		catalog:   catalogGW,
		ledger:    ledgerGW,
		tm:        tm,
		logger:    logger,
	}
}

// Issue registers an order for a catalogued product
func (s *OrderService) Issue(ctx context.Context, p *identity.Principal, req IssueOrderRequest) (*OrderResponse, error) {
	if err := identity.Authorize(p, identity.TransactionAccess); err != nil {
		return nil, err
	}

	order, err := s.issue(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Order issued",
		zap.String("order_id", order.ID.String()),
		zap.String("product_code", order.ProductCode),
		zap.Int("quantity", order.Quantity),
		zap.String("issued_by", p.Username),
	)

	resp := NewOrderResponse(order)
	return &resp, nil
}

// IssueAndPay issues an order and immediately debits its cost. If the
// ledger rejects the debit nothing is kept, not even the issued order.
func (s *OrderService) IssueAndPay(ctx context.Context, p *identity.Principal, req IssueOrderRequest) (*OrderResponse, error) {
	if err := identity.Authorize(p, identity.TransactionAccess); err != nil {
		return nil, err
	}

	var order *trade.PurchaseOrder
	err := s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.issue(ctx, req)
		if err != nil {
			return err
		}
		return s.settle(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order issued and paid",
		zap.String("order_id", order.ID.String()),
		zap.String("total_cost", order.TotalCost().String()),
	)

	resp := NewOrderResponse(order)
	return &resp, nil
}

// Pay debits the cost of an issued order. An insufficient balance leaves
// the order in ISSUED.
func (s *OrderService) Pay(ctx context.Context, p *identity.Principal, orderID uuid.UUID) (*OrderResponse, error) {
	if err := identity.Authorize(p, identity.TransactionAccess); err != nil {
		return nil, err
	}
	if orderID == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	var order *trade.PurchaseOrder
	err := s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		return s.settle(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order paid",
		zap.String("order_id", order.ID.String()),
		zap.String("total_cost", order.TotalCost().String()),
	)

	resp := NewOrderResponse(order)
	return &resp, nil
}

// RecordArrival books the delivered goods into stock and completes the
// order. The product must sit on a shelf position; recording the arrival of
// an already completed order is acknowledged without moving stock again.
func (s *OrderService) RecordArrival(ctx context.Context, p *identity.Principal, orderID uuid.UUID) (*OrderResponse, error) {
	if err := identity.Authorize(p, identity.TransactionAccess); err != nil {
		return nil, err
	}
	if orderID == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	var order *trade.PurchaseOrder
	err := s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order.Status == trade.OrderStatusCompleted {
			return nil
		}

		barcode, err := catalog.ParseBarcode(order.ProductCode)
		if err != nil {
			return err
		}
		product, err := s.catalog.ProductByCode(ctx, barcode)
		if err != nil {
			return err
		}
		if !product.Position.IsSet() {
			return shared.NewDomainError("INVALID_LOCATION", "Product must be assigned a shelf position before arrival")
		}

		if err := s.catalog.AdjustStock(ctx, product.ID, order.Quantity); err != nil {
			return err
		}
		if err := order.Complete(); err != nil {
			return err
		}
		return s.orderRepo.Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order arrival recorded",
		zap.String("order_id", order.ID.String()),
		zap.Int("quantity", order.Quantity),
	)

	resp := NewOrderResponse(order)
	return &resp, nil
}

// Get returns an order by ID
func (s *OrderService) Get(ctx context.Context, p *identity.Principal, orderID uuid.UUID) (*OrderResponse, error) {
	if err := identity.Authorize(p, identity.TransactionAccess); err != nil {
		return nil, err
	}
	if orderID == uuid.Nil {
		return nil, shared.ErrInvalidIdentifier
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	resp := NewOrderResponse(order)
	return &resp, nil
}

// List returns a page of orders
func (s *OrderService) List(ctx context.Context, p *identity.Principal, filter shared.Filter) ([]OrderResponse, error) {
	if err := identity.Authorize(p, identity.TransactionAccess); err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return NewOrderResponses(orders), nil
}

// issue validates the product reference and builds the order aggregate
func (s *OrderService) issue(ctx context.Context, req IssueOrderRequest) (*trade.PurchaseOrder, error) {
	barcode, err := catalog.ParseBarcode(req.ProductCode)
	if err != nil {
		return nil, err
	}
	product, err := s.catalog.ProductByCode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	return trade.NewPurchaseOrder(product.ID, string(product.Code), req.Quantity, req.PricePerUnit)
}

// settle flips the order to PAYED and debits its cost. Both effects ride
// the surrounding transaction.
func (s *OrderService) settle(ctx context.Context, order *trade.PurchaseOrder) error {
	if err := order.MarkPaid(); err != nil {
		return err
	}
	if err := s.ledger.Post(ctx, order.TotalCost().Neg()); err != nil {
		return err
	}
	return s.orderRepo.Save(ctx, order)
}

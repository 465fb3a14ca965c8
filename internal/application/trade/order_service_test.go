package trade

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"
)

type orderFixture struct {
	orderRepo *MockOrderRepository
	catalog   *MockCatalogGateway
	ledger    *MockLedgerGateway
	service   *OrderService
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orderRepo: new(MockOrderRepository),
		catalog:   new(MockCatalogGateway),
		ledger:    new(MockLedgerGateway),
	}
	f.service = NewOrderService(
		f.orderRepo,
		f.catalog,
		f.ledger,
		shared.NopTransactionManager{},
		zap.NewNop(),
	)
	return f
}

func issuedOrder(t *testing.T, product *catalog.ProductType, quantity int, price string) *trade.PurchaseOrder {
	t.Helper()
	order, err := trade.NewPurchaseOrder(product.ID, string(product.Code), quantity, decimal.RequireFromString(price))
	require.NoError(t, err)
	return order
}

func TestOrderService_Issue(t *testing.T) {
	ctx := context.Background()

	t.Run("issues an order for a catalogued product", func(t *testing.T) {
		f := newOrderFixture()
		product := stockedProduct(t, "4006381333931", "Whole milk 1L", "1.45", 0)

		f.catalog.On("ProductByCode", ctx, catalog.Barcode("4006381333931")).Return(product, nil)
		f.orderRepo.On("Save", ctx, mock.AnythingOfType("*trade.PurchaseOrder")).Return(nil)

		resp, err := f.service.Issue(ctx, managerPrincipal(), IssueOrderRequest{
			ProductCode:  "4006381333931",
			Quantity:     50,
			PricePerUnit: decimal.RequireFromString("0.90"),
		})

		require.NoError(t, err)
		assert.Equal(t, "ISSUED", resp.Status)
		assert.True(t, resp.TotalCost.Equal(decimal.RequireFromString("45")))
	})

	t.Run("rejects an unknown product", func(t *testing.T) {
		f := newOrderFixture()

		f.catalog.On("ProductByCode", ctx, catalog.Barcode("4006381333931")).Return(nil, shared.ErrNotFound)

		_, err := f.service.Issue(ctx, managerPrincipal(), IssueOrderRequest{
			ProductCode:  "4006381333931",
			Quantity:     50,
			PricePerUnit: decimal.RequireFromString("0.90"),
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("cashier can issue orders", func(t *testing.T) {
		f := newOrderFixture()
		product := stockedProduct(t, "4006381333931", "Whole milk 1L", "1.45", 0)

		f.catalog.On("ProductByCode", ctx, catalog.Barcode("4006381333931")).Return(product, nil)
		f.orderRepo.On("Save", ctx, mock.AnythingOfType("*trade.PurchaseOrder")).Return(nil)

		resp, err := f.service.Issue(ctx, cashierPrincipal(), IssueOrderRequest{
			ProductCode:  "4006381333931",
			Quantity:     10,
			PricePerUnit: decimal.RequireFromString("0.90"),
		})

		require.NoError(t, err)
		assert.Equal(t, "ISSUED", resp.Status)
	})
}

func TestOrderService_Pay(t *testing.T) {
	ctx := context.Background()

	t.Run("debits the order cost", func(t *testing.T) {
		f := newOrderFixture()
		product := stockedProduct(t, "4006381333931", "Whole milk 1L", "1.45", 0)
		order := issuedOrder(t, product, 50, "0.90")

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		f.ledger.On("Post", ctx, mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.RequireFromString("-45"))
		})).Return(nil)
		f.orderRepo.On("Save", ctx, order).Return(nil)

		resp, err := f.service.Pay(ctx, managerPrincipal(), order.ID)

		require.NoError(t, err)
		assert.Equal(t, "PAYED", resp.Status)
		f.ledger.AssertExpectations(t)
	})

	t.Run("an uncovered debit leaves the order issued", func(t *testing.T) {
		f := newOrderFixture()
		product := stockedProduct(t, "4006381333931", "Whole milk 1L", "1.45", 0)
		order := issuedOrder(t, product, 50, "0.90")

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		f.ledger.On("Post", ctx, mock.Anything).Return(shared.ErrInsufficientFunds)

		_, err := f.service.Pay(ctx, managerPrincipal(), order.ID)

		assert.ErrorIs(t, err, shared.ErrInsufficientFunds)
		f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("a paid order cannot be paid again", func(t *testing.T) {
		f := newOrderFixture()
		product := stockedProduct(t, "4006381333931", "Whole milk 1L", "1.45", 0)
		order := issuedOrder(t, product, 50, "0.90")
		require.NoError(t, order.MarkPaid())

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		_, err := f.service.Pay(ctx, managerPrincipal(), order.ID)

		assert.True(t, shared.IsCode(err, "INVALID_STATE"))
		f.ledger.AssertNotCalled(t, "Post", mock.Anything, mock.Anything)
	})
}

func TestOrderService_IssueAndPay(t *testing.T) {
	ctx := context.Background()

	t.Run("issues and settles in one step", func(t *testing.T) {
		f := newOrderFixture()
		product := stockedProduct(t, "4006381333931", "Whole milk 1L", "1.45", 0)

		f.catalog.On("ProductByCode", ctx, catalog.Barcode("4006381333931")).Return(product, nil)
		f.ledger.On("Post", ctx, mock.Anything).Return(nil)
		f.orderRepo.On("Save", ctx, mock.AnythingOfType("*trade.PurchaseOrder")).Return(nil)

		resp, err := f.service.IssueAndPay(ctx, managerPrincipal(), IssueOrderRequest{
			ProductCode:  "4006381333931",
			Quantity:     10,
			PricePerUnit: decimal.NewFromInt(2),
		})

		require.NoError(t, err)
		assert.Equal(t, "PAYED", resp.Status)
	})

	t.Run("a rejected debit keeps nothing", func(t *testing.T) {
		f := newOrderFixture()
		product := stockedProduct(t, "4006381333931", "Whole milk 1L", "1.45", 0)

		f.catalog.On("ProductByCode", ctx, catalog.Barcode("4006381333931")).Return(product, nil)
		f.ledger.On("Post", ctx, mock.Anything).Return(shared.ErrInsufficientFunds)

		_, err := f.service.IssueAndPay(ctx, managerPrincipal(), IssueOrderRequest{
			ProductCode:  "4006381333931",
			Quantity:     10,
			PricePerUnit: decimal.NewFromInt(2),
		})

		assert.ErrorIs(t, err, shared.ErrInsufficientFunds)
		f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestOrderService_RecordArrival(t *testing.T) {
	ctx := context.Background()

	t.Run("books the goods into stock and completes", func(t *testing.T) {
		f := newOrderFixture()
		product := stockedProduct(t, "4006381333931", "Whole milk 1L", "1.45", 5)
		order := issuedOrder(t, product, 50, "0.90")
		require.NoError(t, order.MarkPaid())

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		f.catalog.On("ProductByCode", ctx, catalog.Barcode("4006381333931")).Return(product, nil)
		f.catalog.On("AdjustStock", ctx, product.ID, 50).Return(nil)
		f.orderRepo.On("Save", ctx, order).Return(nil)

		resp, err := f.service.RecordArrival(ctx, managerPrincipal(), order.ID)

		require.NoError(t, err)
		assert.Equal(t, "COMPLETED", resp.Status)
		f.catalog.AssertExpectations(t)
	})

	t.Run("requires a shelf position", func(t *testing.T) {
		f := newOrderFixture()
		product, err := catalog.NewProductType("4006381333931", "Whole milk 1L", decimal.RequireFromString("1.45"), "")
		require.NoError(t, err)
		order := issuedOrder(t, product, 50, "0.90")
		require.NoError(t, order.MarkPaid())

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		f.catalog.On("ProductByCode", ctx, catalog.Barcode("4006381333931")).Return(product, nil)

		_, err = f.service.RecordArrival(ctx, managerPrincipal(), order.ID)

		assert.True(t, shared.IsCode(err, "INVALID_LOCATION"))
		f.catalog.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("an unpaid order cannot arrive", func(t *testing.T) {
		f := newOrderFixture()
		product := stockedProduct(t, "4006381333931", "Whole milk 1L", "1.45", 0)
		order := issuedOrder(t, product, 50, "0.90")

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		f.catalog.On("ProductByCode", ctx, catalog.Barcode("4006381333931")).Return(product, nil)
		f.catalog.On("AdjustStock", ctx, product.ID, 50).Return(nil)

		_, err := f.service.RecordArrival(ctx, managerPrincipal(), order.ID)

		assert.True(t, shared.IsCode(err, "INVALID_STATE"))
	})

	t.Run("a completed order is acknowledged without moving stock", func(t *testing.T) {
		f := newOrderFixture()
		product := stockedProduct(t, "4006381333931", "Whole milk 1L", "1.45", 0)
		order := issuedOrder(t, product, 50, "0.90")
		require.NoError(t, order.MarkPaid())
		require.NoError(t, order.Complete())

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		resp, err := f.service.RecordArrival(ctx, managerPrincipal(), order.ID)

		require.NoError(t, err)
		assert.Equal(t, "COMPLETED", resp.Status)
		f.catalog.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
	})
}

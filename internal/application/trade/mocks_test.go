package trade

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"
)

// MockSaleRepository is a mock implementation of trade.SaleTransactionRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SaleTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SaleTransaction), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.SaleTransaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.SaleTransaction), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *trade.SaleTransaction) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockReturnRepository is a mock implementation of trade.ReturnTransactionRepository
type MockReturnRepository struct {
	mock.Mock
}

func (m *MockReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.ReturnTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.ReturnTransaction), args.Error(1)
}

func (m *MockReturnRepository) FindBySale(ctx context.Context, saleID uuid.UUID) ([]trade.ReturnTransaction, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.ReturnTransaction), args.Error(1)
}

func (m *MockReturnRepository) Save(ctx context.Context, ret *trade.ReturnTransaction) error {
	args := m.Called(ctx, ret)
	return args.Error(0)
}

func (m *MockReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReturnRepository) SumReturnedForSale(ctx context.Context, saleID uuid.UUID, barcode string, excludeReturnID uuid.UUID) (int, error) {
	args := m.Called(ctx, saleID, barcode, excludeReturnID)
	return args.Int(0), args.Error(1)
}

// MockOrderRepository is a mock implementation of trade.PurchaseOrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PurchaseOrder), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.PurchaseOrder, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.PurchaseOrder), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *trade.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCatalogGateway is a mock implementation of CatalogGateway
type MockCatalogGateway struct {
	mock.Mock
}

func (m *MockCatalogGateway) ProductByCode(ctx context.Context, code catalog.Barcode) (*catalog.ProductType, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductType), args.Error(1)
}

func (m *MockCatalogGateway) AdjustStock(ctx context.Context, productID uuid.UUID, delta int) error {
	args := m.Called(ctx, productID, delta)
	return args.Error(0)
}

// MockLedgerGateway is a mock implementation of LedgerGateway
type MockLedgerGateway struct {
	mock.Mock
}

func (m *MockLedgerGateway) Post(ctx context.Context, amount decimal.Decimal) error {
	args := m.Called(ctx, amount)
	return args.Error(0)
}

func managerPrincipal() *identity.Principal {
	return &identity.Principal{UserID: uuid.New(), Username: "manager", Role: identity.RoleShopManager}
}

func cashierPrincipal() *identity.Principal {
	return &identity.Principal{UserID: uuid.New(), Username: "cashier", Role: identity.RoleCashier}
}

func stockedProduct(t *testing.T, code, description, price string, quantity int) *catalog.ProductType {
	t.Helper()
	product, err := catalog.NewProductType(code, description, decimal.RequireFromString(price), "")
	require.NoError(t, err)
	require.NoError(t, product.SetPosition("1-a-1"))
	if quantity > 0 {
		require.NoError(t, product.AdjustQuantity(quantity))
	}
	return product
}

func closedSale(t *testing.T, barcode, price string, amount int) *trade.SaleTransaction {
	t.Helper()
	sale := trade.NewSaleTransaction()
	require.NoError(t, sale.AddEntry(barcode, "test product", amount, decimal.RequireFromString(price)))
	require.NoError(t, sale.Close())
	return sale
}

func paidSale(t *testing.T, barcode, price string, amount int) *trade.SaleTransaction {
	t.Helper()
	sale := closedSale(t, barcode, price, amount)
	require.NoError(t, sale.MarkPaid(trade.PaymentCash))
	return sale
}

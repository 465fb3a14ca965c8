package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/cache"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductType), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code catalog.Barcode) (*catalog.ProductType, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductType), args.Error(1)
}

func (m *MockProductRepository) SearchByDescription(ctx context.Context, text string) ([]catalog.ProductType, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ProductType), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.ProductType, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ProductType), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.ProductType) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) ExistsByCode(ctx context.Context, code catalog.Barcode, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, code, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ExistsByPosition(ctx context.Context, position catalog.Position, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, position, excludeID)
	return args.Bool(0), args.Error(1)
}

func newProductService(repo *MockProductRepository) *ProductService {
	return NewProductService(repo, cache.NewInMemorySnapshot[[]catalog.ProductType](), zap.NewNop())
}

func managerPrincipal() *identity.Principal {
	return &identity.Principal{UserID: uuid.New(), Username: "manager", Role: identity.RoleShopManager}
}

func cashierPrincipal() *identity.Principal {
	return &identity.Principal{UserID: uuid.New(), Username: "cashier", Role: identity.RoleCashier}
}

func testProduct(t *testing.T, code string) *catalog.ProductType {
	t.Helper()
	product, err := catalog.NewProductType(code, "Whole milk 1L", decimal.RequireFromString("1.45"), "")
	require.NoError(t, err)
	return product
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product with unique barcode", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := newProductService(repo)

		repo.On("ExistsByCode", ctx, catalog.Barcode("4006381333931"), uuid.Nil).Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*catalog.ProductType")).Return(nil)

		resp, err := service.Create(ctx, managerPrincipal(), CreateProductRequest{
			Code:         "4006381333931",
			Description:  "Whole milk 1L",
			PricePerUnit: decimal.RequireFromString("1.45"),
		})

		require.NoError(t, err)
		assert.Equal(t, "4006381333931", resp.Code)
		assert.Equal(t, 0, resp.Quantity)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate barcode", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := newProductService(repo)

		repo.On("ExistsByCode", ctx, catalog.Barcode("4006381333931"), uuid.Nil).Return(true, nil)

		_, err := service.Create(ctx, managerPrincipal(), CreateProductRequest{
			Code:         "4006381333931",
			Description:  "Whole milk 1L",
			PricePerUnit: decimal.RequireFromString("1.45"),
		})

		assert.True(t, shared.IsCode(err, "ALREADY_EXISTS"))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects invalid barcode before hitting the store", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := newProductService(repo)

		_, err := service.Create(ctx, managerPrincipal(), CreateProductRequest{
			Code:         "4006381333930",
			Description:  "Whole milk 1L",
			PricePerUnit: decimal.RequireFromString("1.45"),
		})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "ExistsByCode", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cashier cannot create products", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := newProductService(repo)

		_, err := service.Create(ctx, cashierPrincipal(), CreateProductRequest{
			Code:         "4006381333931",
			Description:  "Whole milk 1L",
			PricePerUnit: decimal.RequireFromString("1.45"),
		})

		assert.ErrorIs(t, err, shared.ErrUnauthorized)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductService_SetPosition(t *testing.T) {
	ctx := context.Background()

	t.Run("shelves product on a free position", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := newProductService(repo)
		product := testProduct(t, "4006381333931")

		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("ExistsByPosition", ctx, catalog.Position("3-a-12"), product.ID).Return(false, nil)
		repo.On("Save", ctx, product).Return(nil)

		resp, err := service.SetPosition(ctx, managerPrincipal(), product.ID, SetPositionRequest{Position: "3-a-12"})

		require.NoError(t, err)
		assert.Equal(t, "3-a-12", resp.Position)
	})

	t.Run("rejects an occupied position", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := newProductService(repo)
		product := testProduct(t, "4006381333931")

		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("ExistsByPosition", ctx, catalog.Position("3-a-12"), product.ID).Return(true, nil)

		_, err := service.SetPosition(ctx, managerPrincipal(), product.ID, SetPositionRequest{Position: "3-a-12"})

		assert.True(t, shared.IsCode(err, "POSITION_OCCUPIED"))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("clears position without an occupancy check", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := newProductService(repo)
		product := testProduct(t, "4006381333931")
		require.NoError(t, product.SetPosition("3-a-12"))

		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("Save", ctx, product).Return(nil)

		resp, err := service.SetPosition(ctx, managerPrincipal(), product.ID, SetPositionRequest{Position: ""})

		require.NoError(t, err)
		assert.Empty(t, resp.Position)
		repo.AssertNotCalled(t, "ExistsByPosition", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProductService_AdjustQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("applies a positive delta", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := newProductService(repo)
		product := testProduct(t, "4006381333931")
		require.NoError(t, product.SetPosition("3-a-12"))

		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("Save", ctx, product).Return(nil)

		resp, err := service.AdjustQuantity(ctx, managerPrincipal(), product.ID, AdjustQuantityRequest{Delta: 25})

		require.NoError(t, err)
		assert.Equal(t, 25, resp.Quantity)
	})

	t.Run("rejects a delta that would go negative", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := newProductService(repo)
		product := testProduct(t, "4006381333931")
		require.NoError(t, product.SetPosition("3-a-12"))

		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := service.AdjustQuantity(ctx, managerPrincipal(), product.ID, AdjustQuantityRequest{Delta: -1})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductService_Snapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("serves repeated reads from the cache", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := newProductService(repo)
		product := testProduct(t, "4006381333931")

		repo.On("SearchByDescription", ctx, "").Return([]catalog.ProductType{*product}, nil).Once()

		first, err := service.Snapshot(ctx, cashierPrincipal())
		require.NoError(t, err)
		second, err := service.Snapshot(ctx, cashierPrincipal())
		require.NoError(t, err)

		assert.Equal(t, first, second)
		repo.AssertNumberOfCalls(t, "SearchByDescription", 1)
	})

	t.Run("a write invalidates the snapshot", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := newProductService(repo)
		product := testProduct(t, "4006381333931")
		require.NoError(t, product.SetPosition("3-a-12"))

		repo.On("SearchByDescription", ctx, "").Return([]catalog.ProductType{*product}, nil)
		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("Save", ctx, product).Return(nil)

		_, err := service.Snapshot(ctx, cashierPrincipal())
		require.NoError(t, err)

		_, err = service.AdjustQuantity(ctx, managerPrincipal(), product.ID, AdjustQuantityRequest{Delta: 5})
		require.NoError(t, err)

		_, err = service.Snapshot(ctx, cashierPrincipal())
		require.NoError(t, err)
		repo.AssertNumberOfCalls(t, "SearchByDescription", 2)
	})
}

func TestProductService_FindByCode(t *testing.T) {
	ctx := context.Background()

	t.Run("returns product by barcode", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := newProductService(repo)
		product := testProduct(t, "4006381333931")

		repo.On("FindByCode", ctx, catalog.Barcode("4006381333931")).Return(product, nil)

		resp, err := service.FindByCode(ctx, cashierPrincipal(), "4006381333931")

		require.NoError(t, err)
		assert.Equal(t, product.ID, resp.ID)
	})

	t.Run("unknown barcode maps to not found", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := newProductService(repo)

		repo.On("FindByCode", ctx, catalog.Barcode("012345678905")).Return(nil, shared.ErrNotFound)

		_, err := service.FindByCode(ctx, cashierPrincipal(), "012345678905")

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductService_AdjustStock(t *testing.T) {
	ctx := context.Background()

	t.Run("restocks on behalf of the trade layer", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := newProductService(repo)
		product := testProduct(t, "4006381333931")
		require.NoError(t, product.SetPosition("3-a-12"))
		require.NoError(t, product.AdjustQuantity(10))

		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("Save", ctx, product).Return(nil)

		require.NoError(t, service.AdjustStock(ctx, product.ID, -4))
		assert.Equal(t, 6, product.Quantity)
	})
}

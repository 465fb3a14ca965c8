package persistence

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/retailpos/backend/internal/domain/catalog"
)

// newTestDB opens an isolated in-memory database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := NewSQLiteDatabase()
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	t.Cleanup(func() { _ = db.Close() })
	return db.DB
}

// newTestProduct creates a shelved product ready for trading in tests
func newTestProduct(t *testing.T, code, description string, price float64, quantity int) *catalog.ProductType {
	t.Helper()

	product, err := catalog.NewProductType(code, description, decimal.NewFromFloat(price), "")
	require.NoError(t, err)
	require.NoError(t, product.SetPosition("1-a-1"))
	if quantity > 0 {
		require.NoError(t, product.AdjustQuantity(quantity))
	}
	return product
}

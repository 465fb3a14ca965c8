package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	catalogapp "github.com/retailpos/backend/internal/application/catalog"
	financeapp "github.com/retailpos/backend/internal/application/finance"
	identityapp "github.com/retailpos/backend/internal/application/identity"
	partnerapp "github.com/retailpos/backend/internal/application/partner"
	tradeapp "github.com/retailpos/backend/internal/application/trade"
	"github.com/retailpos/backend/internal/infrastructure/auth"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"github.com/retailpos/backend/internal/interfaces/http/handler"
)

// testEngine wires the router with empty services; auth middleware rejects
// everything before a service is ever reached.
func testEngine() (*httptest.Server, *auth.JWTService) {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-of-sufficient-length",
		AccessTokenExpiration: time.Hour,
		Issuer:                "test",
	})
	log := zap.NewNop()

	engine := New(log, jwtService, Handlers{
		Auth:     handler.NewAuthHandler(identityapp.NewAuthService(nil, jwtService, log)),
		User:     handler.NewUserHandler(identityapp.NewUserService(nil, log)),
		Product:  handler.NewProductHandler(catalogapp.NewProductService(nil, nil, log)),
		Ledger:   handler.NewLedgerHandler(financeapp.NewLedgerService(nil, nil, log)),
		Sale:     handler.NewSaleHandler(tradeapp.NewSaleService(nil, nil, nil, nil, nil, log)),
		Return:   handler.NewReturnHandler(tradeapp.NewReturnService(nil, nil, nil, nil, nil, log)),
		Order:    handler.NewOrderHandler(tradeapp.NewOrderService(nil, nil, nil, nil, log)),
		Customer: handler.NewCustomerHandler(partnerapp.NewCustomerService(nil, log)),
	})

	return httptest.NewServer(engine), jwtService
}

func TestRouter_Health(t *testing.T) {
	server, _ := testEngine()
	defer server.Close()

	resp, err := http.Get(server.URL + "/health")
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_PrivateRoutesRequireToken(t *testing.T) {
	server, _ := testEngine()
	defer server.Close()

	paths := []string{
		"/api/v1/products",
		"/api/v1/sales",
		"/api/v1/ledger/balance",
		"/api/v1/customers",
		"/api/v1/users",
		"/api/v1/orders",
	}

	for _, path := range paths {
		resp, err := http.Get(server.URL + path)
		assert.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestRouter_LoginIsPublic(t *testing.T) {
	server, _ := testEngine()
	defer server.Close()

	// An empty body fails binding with 400, which proves the request got
	// past authentication.
	resp, err := http.Post(server.URL+"/api/v1/auth/login", "application/json", nil)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

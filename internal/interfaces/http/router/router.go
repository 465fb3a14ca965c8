package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/infrastructure/auth"
	"github.com/retailpos/backend/internal/infrastructure/logger"
	"github.com/retailpos/backend/internal/interfaces/http/handler"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every route registrar of the API
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Product  *handler.ProductHandler
	Ledger   *handler.LedgerHandler
	Sale     *handler.SaleHandler
	Return   *handler.ReturnHandler
	Order    *handler.OrderHandler
	Customer *handler.CustomerHandler
}

// New builds the gin engine: request-ID and logging middleware first, then
// a public group (health, login) and a token-guarded group with every
// domain route.
func New(log *zap.Logger, jwtService *auth.JWTService, h Handlers) *gin.Engine {
	registerValidators()

	engine := gin.New()
	engine.Use(logger.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := engine.Group("/api/v1")
	private := engine.Group("/api/v1")
	private.Use(middleware.Authentication(jwtService))

	h.Auth.RegisterRoutes(public, private)
	h.User.RegisterRoutes(private)
	h.Product.RegisterRoutes(private)
	h.Ledger.RegisterRoutes(private)
	h.Sale.RegisterRoutes(private)
	h.Return.RegisterRoutes(private)
	h.Order.RegisterRoutes(private)
	h.Customer.RegisterRoutes(private)

	return engine
}

// registerValidators adds the custom binding tags used by request DTOs
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("barcode", func(fl validator.FieldLevel) bool {
		_, err := catalog.ParseBarcode(fl.Field().String())
		return err == nil
	})
}

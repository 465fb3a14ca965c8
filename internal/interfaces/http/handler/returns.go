package handler

import (
	"github.com/gin-gonic/gin"

	tradeapp "github.com/retailpos/backend/internal/application/trade"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
)

// ReturnHandler handles return transaction requests
type ReturnHandler struct {
	BaseHandler
	returnService *tradeapp.ReturnService
}

// NewReturnHandler creates a new ReturnHandler
func NewReturnHandler(returnService *tradeapp.ReturnService) *ReturnHandler {
	return &ReturnHandler{returnService: returnService}
}

// RegisterRoutes registers return routes
func (h *ReturnHandler) RegisterRoutes(rg *gin.RouterGroup) {
	returns := rg.Group("/returns")
	{
		returns.POST("", h.Open)
		returns.GET("/:id", h.Get)
		returns.DELETE("/:id", h.Delete)
		returns.POST("/:id/lines", h.AddProduct)
		returns.POST("/:id/close", h.Close)
		returns.POST("/:id/pay", h.Pay)
	}
	rg.GET("/sales/:id/returns", h.ListBySale)
}

// Open starts a return against a paid sale
func (h *ReturnHandler) Open(c *gin.Context) {
	var req tradeapp.OpenReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	ret, err := h.returnService.Open(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ret)
}

// Get returns a return transaction by ID
func (h *ReturnHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid return ID")
		return
	}

	ret, err := h.returnService.Get(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ret)
}

// Delete discards a return that was never refunded
func (h *ReturnHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid return ID")
		return
	}

	if err := h.returnService.Delete(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddProduct registers returned units
func (h *ReturnHandler) AddProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid return ID")
		return
	}

	var req tradeapp.ReturnLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	ret, err := h.returnService.AddProduct(c.Request.Context(), middleware.GetPrincipal(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ret)
}

// Close commits or aborts the return
func (h *ReturnHandler) Close(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid return ID")
		return
	}

	var req tradeapp.CloseReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	ret, err := h.returnService.Close(c.Request.Context(), middleware.GetPrincipal(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ret)
}

// Pay refunds a committed return
func (h *ReturnHandler) Pay(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid return ID")
		return
	}

	var req tradeapp.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	ret, err := h.returnService.Pay(c.Request.Context(), middleware.GetPrincipal(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ret)
}

// ListBySale returns every return opened against a sale
func (h *ReturnHandler) ListBySale(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	rets, err := h.returnService.ListBySale(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rets)
}

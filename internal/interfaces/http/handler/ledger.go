package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	financeapp "github.com/retailpos/backend/internal/application/finance"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
)

// LedgerHandler handles cash ledger requests
type LedgerHandler struct {
	BaseHandler
	ledgerService *financeapp.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *financeapp.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// RegisterRoutes registers ledger routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ledger := rg.Group("/ledger")
	{
		ledger.POST("/operations", h.Record)
		ledger.GET("/operations", h.Entries)
		ledger.GET("/balance", h.Balance)
	}
}

// rangeQuery binds an optional inclusive date range
type rangeQuery struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// Record appends a manual credit or debit
func (h *LedgerHandler) Record(c *gin.Context) {
	var req financeapp.RecordBalanceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	op, err := h.ledgerService.RecordBalanceUpdate(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, op)
}

// Entries returns ledger entries inside an optional date range
func (h *LedgerHandler) Entries(c *gin.Context) {
	var q rangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	entries, err := h.ledgerService.EntriesBetween(c.Request.Context(), middleware.GetPrincipal(c), q.From, q.To)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// Balance returns the running balance
func (h *LedgerHandler) Balance(c *gin.Context) {
	balance, err := h.ledgerService.Balance(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, balance)
}

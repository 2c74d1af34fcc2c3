package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/staff_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/staff_ledger_app/internal/dto"
	"github.com/SscSPs/staff_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests for the shared ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers routes related to the ledger.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.POST("/entries", h.appendEntry)
		ledger.GET("/entries", h.listEntries)
		ledger.GET("/summary", h.getSummary)
		ledger.GET("/balance", h.getBalance)
		ledger.GET("/outstanding", h.getOutstanding)
		ledger.POST("/reconcile", h.reconcileBalance)
	}
}

// appendEntry godoc
// @Summary Append a ledger entry
// @Description Appends a general (non-payroll) entry to the shared ledger and updates the balance
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateLedgerEntryRequest true "Entry details"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Invalid input or payroll category"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to append entry"
// @Security BearerAuth
// @Router /ledger/entries [post]
func (h *ledgerHandler) appendEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AppendEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.ledgerService.AppendEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to append entry")
		return
	}

	logger.Info("Ledger entry appended", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

// listEntries godoc
// @Summary List ledger entries
// @Description Lists entries newest first with cursor pagination
// @Tags ledger
// @Produce  json
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Cursor from the previous page"
// @Param   category query string false "Category tag"
// @Param   employeeId query string false "Linked employee"
// @Param   since query string false "YYYY-MM-DD"
// @Success 200 {object} dto.ListLedgerEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Security BearerAuth
// @Router /ledger/entries [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListLedgerEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	res, err := h.ledgerService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, res)
}

// getSummary godoc
// @Summary Get the ledger summary
// @Tags ledger
// @Produce  json
// @Success 200 {object} dto.LedgerSummaryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to load ledger"
// @Security BearerAuth
// @Router /ledger/summary [get]
func (h *ledgerHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledger, err := h.ledgerService.GetSummary(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to load ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerSummaryResponse(ledger))
}

// getBalance godoc
// @Summary Get the ledger balance
// @Description Σcredits − Σdebits over the whole log
// @Tags ledger
// @Produce  json
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to load balance"
// @Security BearerAuth
// @Router /ledger/balance [get]
func (h *ledgerHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	balance, err := h.ledgerService.GetBalance(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to load balance")
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance})
}

// getOutstanding godoc
// @Summary Get the outstanding estimate
// @Tags ledger
// @Produce  json
// @Success 200 {object} dto.OutstandingResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute outstanding"
// @Security BearerAuth
// @Router /ledger/outstanding [get]
func (h *ledgerHandler) getOutstanding(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	outstanding, err := h.ledgerService.GetOutstanding(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute outstanding")
		return
	}
	c.JSON(http.StatusOK, dto.OutstandingResponse{Outstanding: outstanding, Basis: "share of payroll debits"})
}

// reconcileBalance godoc
// @Summary Re-derive the ledger balance
// @Description Folds the full log and repairs the stored balance when it drifted
// @Tags ledger
// @Produce  json
// @Success 200 {object} domain.BalanceReconciliation
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Ledger changed during reconciliation"
// @Failure 500 {object} map[string]string "Failed to reconcile balance"
// @Security BearerAuth
// @Router /ledger/reconcile [post]
func (h *ledgerHandler) reconcileBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	result, err := h.ledgerService.ReconcileBalance(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reconcile balance")
		return
	}
	c.JSON(http.StatusOK, result)
}

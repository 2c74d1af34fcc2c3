package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/staff_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/staff_ledger_app/internal/dto"
	"github.com/SscSPs/staff_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// advanceRequestHandler drives the PENDING → APPROVED|REJECTED, APPROVED → DISBURSED workflow.
type advanceRequestHandler struct {
	employeeService portssvc.AdvanceRequestSvc
}

func newAdvanceRequestHandler(es portssvc.AdvanceRequestSvc) *advanceRequestHandler {
	return &advanceRequestHandler{employeeService: es}
}

// submit godoc
// @Summary Submit an advance request
// @Tags advance-requests
// @Accept  json
// @Produce  json
// @Param   id path string true "Employee ID"
// @Param   request body dto.SubmitAdvanceRequestRequest true "Amount and reason"
// @Success 201 {object} dto.AdvanceRequestResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Employee not found"
// @Failure 500 {object} map[string]string "Failed to submit advance request"
// @Security BearerAuth
// @Router /employees/{id}/advance-requests [post]
func (h *advanceRequestHandler) submit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("employee_id", c.Param("id")))
	var req dto.SubmitAdvanceRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitAdvanceRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	request, err := h.employeeService.SubmitAdvanceRequest(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to submit advance request")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAdvanceRequestResponse(request))
}

// list godoc
// @Summary List an employee's advance requests
// @Tags advance-requests
// @Produce  json
// @Param   id path string true "Employee ID"
// @Param   status query string false "PENDING, APPROVED, REJECTED or DISBURSED"
// @Success 200 {array} dto.AdvanceRequestResponse
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Employee not found"
// @Failure 500 {object} map[string]string "Failed to list advance requests"
// @Security BearerAuth
// @Router /employees/{id}/advance-requests [get]
func (h *advanceRequestHandler) list(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("employee_id", c.Param("id")))
	var params dto.ListAdvanceRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	requests, err := h.employeeService.ListAdvanceRequests(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list advance requests")
		return
	}
	c.JSON(http.StatusOK, dto.ToAdvanceRequestResponses(requests))
}

// decide godoc
// @Summary Approve or reject an advance request
// @Tags advance-requests
// @Accept  json
// @Produce  json
// @Param   requestID path string true "Advance request ID"
// @Param   decision body dto.DecideAdvanceRequestRequest true "approve or reject"
// @Success 200 {object} dto.AdvanceRequestResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Advance request not found"
// @Failure 409 {object} map[string]string "Request is no longer pending"
// @Failure 500 {object} map[string]string "Failed to decide advance request"
// @Security BearerAuth
// @Router /advance-requests/{requestID}/decision [post]
func (h *advanceRequestHandler) decide(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("request_id", c.Param("requestID")))
	var req dto.DecideAdvanceRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DecideAdvanceRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	request, err := h.employeeService.DecideAdvanceRequest(c.Request.Context(), c.Param("requestID"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to decide advance request")
		return
	}
	c.JSON(http.StatusOK, dto.ToAdvanceRequestResponse(request))
}

// disburse godoc
// @Summary Disburse an approved advance request
// @Description Issues the advance and marks the request DISBURSED in one transaction
// @Tags advance-requests
// @Accept  json
// @Produce  json
// @Param   requestID path string true "Advance request ID"
// @Param   disbursement body dto.DisburseAdvanceRequestRequest false "Optional date and description"
// @Success 201 {object} dto.PayrollPostingResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Advance request not found"
// @Failure 409 {object} map[string]string "Request is not approved"
// @Failure 500 {object} map[string]string "Failed to disburse advance request"
// @Security BearerAuth
// @Router /advance-requests/{requestID}/disburse [post]
func (h *advanceRequestHandler) disburse(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("request_id", c.Param("requestID")))
	var req dto.DisburseAdvanceRequestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for DisburseAdvanceRequest", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	posting, err := h.employeeService.DisburseAdvanceRequest(c.Request.Context(), c.Param("requestID"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to disburse advance request")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPayrollPostingResponse(posting))
}

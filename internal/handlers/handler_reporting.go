package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/staff_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/staff_ledger_app/internal/dto"
	"github.com/SscSPs/staff_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const defaultCashFlowWindowDays = 30

// reportingHandler serves the aggregation views and the stored monthly reports.
type reportingHandler struct {
	aggregationService   portssvc.AggregationService
	monthlyReportService portssvc.MonthlyReportService
}

// registerReportingRoutes registers the read-only reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, aggregationService portssvc.AggregationService, monthlyReportService portssvc.MonthlyReportService) {
	h := &reportingHandler{aggregationService: aggregationService, monthlyReportService: monthlyReportService}

	reports := rg.Group("/reports")
	{
		reports.GET("/category-breakdown", h.getCategoryBreakdown)
		reports.GET("/cash-flow", h.getCashFlow)
		reports.GET("/dashboard", h.getDashboard)
		reports.GET("/monthly", h.listMonthlyReports)
		reports.GET("/monthly/:year/:month", h.getMonthlyReport)
	}
}

// getCategoryBreakdown godoc
// @Summary Totals per category
// @Tags reports
// @Produce  json
// @Param   since query string false "Only entries dated on or after this day (YYYY-MM-DD)"
// @Success 200 {object} dto.CategoryBreakdownResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute category breakdown"
// @Security BearerAuth
// @Router /reports/category-breakdown [get]
func (h *reportingHandler) getCategoryBreakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	since, err := parseDateQuery(c, "since")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid since date, expected YYYY-MM-DD"})
		return
	}

	rows, err := h.aggregationService.GetCategoryBreakdown(c.Request.Context(), since)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute category breakdown")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryBreakdownResponse(rows, since))
}

// getCashFlow godoc
// @Summary Cash flow over a trailing window
// @Tags reports
// @Produce  json
// @Param   windowDays query int false "Window length in days" default(30)
// @Success 200 {object} domain.CashFlow
// @Failure 400 {object} map[string]string "Invalid window"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute cash flow"
// @Security BearerAuth
// @Router /reports/cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	windowDays := defaultCashFlowWindowDays
	if raw := c.Query("windowDays"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "windowDays must be an integer"})
			return
		}
		windowDays = parsed
	}

	flow, err := h.aggregationService.GetCashFlow(c.Request.Context(), windowDays)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute cash flow")
		return
	}
	c.JSON(http.StatusOK, flow)
}

// getDashboard godoc
// @Summary Dashboard overview
// @Tags reports
// @Produce  json
// @Success 200 {object} domain.Dashboard
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build dashboard"
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	dashboard, err := h.aggregationService.GetDashboard(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// listMonthlyReports godoc
// @Summary List monthly payroll reports
// @Tags reports
// @Produce  json
// @Param   limit query int false "Page size" default(12)
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListMonthlyReportsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list monthly reports"
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *reportingHandler) listMonthlyReports(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListMonthlyReportsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	res, err := h.monthlyReportService.ListMonthlyReports(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list monthly reports")
		return
	}
	c.JSON(http.StatusOK, res)
}

// getMonthlyReport godoc
// @Summary Get the report for one month
// @Tags reports
// @Produce  json
// @Param   year path int true "Year"
// @Param   month path int true "Month (1-12)"
// @Success 200 {object} domain.MonthlyReport
// @Failure 400 {object} map[string]string "Invalid period"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No report for that month"
// @Failure 500 {object} map[string]string "Failed to retrieve monthly report"
// @Security BearerAuth
// @Router /reports/monthly/{year}/{month} [get]
func (h *reportingHandler) getMonthlyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, err := parseIntParam(c, "year")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
		return
	}
	month, err := parseIntParam(c, "month")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be an integer"})
		return
	}
	logger = logger.With(slog.Int("year", year), slog.Int("month", month))

	report, err := h.monthlyReportService.GetMonthlyReport(c.Request.Context(), year, month)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve monthly report")
		return
	}
	c.JSON(http.StatusOK, report)
}

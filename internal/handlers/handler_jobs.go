package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/staff_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/staff_ledger_app/internal/core/services"
	"github.com/SscSPs/staff_ledger_app/internal/dto"
	"github.com/SscSPs/staff_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// jobsHandler exposes the scheduled jobs for manual runs plus the alert and audit reads they feed.
type jobsHandler struct {
	expirationService    portssvc.ExpirationService
	monthlyReportService portssvc.MonthlyReportService
	auditService         portssvc.AuditService
	now                  func() time.Time
}

func registerJobRoutes(rg *gin.RouterGroup, container *portssvc.ServiceContainer) {
	h := &jobsHandler{
		expirationService:    container.Expiration,
		monthlyReportService: container.MonthlyReport,
		auditService:         container.Audit,
		now:                  time.Now,
	}

	jobs := rg.Group("/jobs")
	{
		jobs.POST("/check-expirations", h.runCheckExpirations)
		jobs.POST("/monthly-report", h.runMonthlyReport)
	}
	rg.GET("/alerts/expirations", h.getExpirationAlerts)
	rg.GET("/audit-logs", h.listAuditLogs)
}

// runCheckExpirations godoc
// @Summary Run the expiration scan now
// @Description Recomputes every QID and passport alert and replaces the stored snapshot
// @Tags jobs
// @Produce  json
// @Success 200 {object} dto.JobRunResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Expiration check failed"
// @Security BearerAuth
// @Router /jobs/check-expirations [post]
func (h *jobsHandler) runCheckExpirations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("job", services.JobCheckExpirations))
	started := h.now()
	snapshot, err := h.expirationService.CheckExpirations(c.Request.Context(), started)
	if err != nil {
		respondServiceError(c, logger, err, "Expiration check failed")
		return
	}
	logger.Info("Expiration check triggered manually", slog.Int("alerts", snapshot.Count))
	c.JSON(http.StatusOK, dto.JobRunResponse{
		Job:        services.JobCheckExpirations,
		StartedAt:  started,
		FinishedAt: h.now(),
		Result:     snapshot,
	})
}

// runMonthlyReport godoc
// @Summary Generate last month's payroll report now
// @Description Re-running for the same month replaces the stored report
// @Tags jobs
// @Produce  json
// @Success 200 {object} dto.JobRunResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Monthly report generation failed"
// @Security BearerAuth
// @Router /jobs/monthly-report [post]
func (h *jobsHandler) runMonthlyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("job", services.JobMonthlyReport))
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	started := h.now()
	report, err := h.monthlyReportService.GenerateMonthlyReport(c.Request.Context(), started, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Monthly report generation failed")
		return
	}
	c.JSON(http.StatusOK, dto.JobRunResponse{
		Job:        services.JobMonthlyReport,
		StartedAt:  started,
		FinishedAt: h.now(),
		Result:     dto.ToMonthlyReportSummary(report),
	})
}

// getExpirationAlerts godoc
// @Summary Current expiration alerts
// @Description Returns the snapshot written by the last scan, empty if none has run
// @Tags alerts
// @Produce  json
// @Success 200 {object} domain.ExpirationSnapshot
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to retrieve expiration alerts"
// @Security BearerAuth
// @Router /alerts/expirations [get]
func (h *jobsHandler) getExpirationAlerts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	snapshot, err := h.expirationService.GetExpirationAlerts(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve expiration alerts")
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// listAuditLogs godoc
// @Summary List audit records
// @Tags audit
// @Produce  json
// @Param   employeeId query string false "Only records about this employee"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListAuditLogsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list audit logs"
// @Security BearerAuth
// @Router /audit-logs [get]
func (h *jobsHandler) listAuditLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListAuditLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	res, err := h.auditService.ListAuditLogs(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list audit logs")
		return
	}
	c.JSON(http.StatusOK, res)
}

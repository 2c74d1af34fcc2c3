package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/staff_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/staff_ledger_app/internal/dto"
	"github.com/SscSPs/staff_ledger_app/internal/middleware"
	"github.com/SscSPs/staff_ledger_app/internal/utils/accounting"
	"github.com/gin-gonic/gin"
)

// employeeHandler handles HTTP requests for the employee registry and payroll postings.
type employeeHandler struct {
	employeeService    portssvc.EmployeeSvcFacade
	aggregationService portssvc.AggregationService
}

func newEmployeeHandler(es portssvc.EmployeeSvcFacade, as portssvc.AggregationService) *employeeHandler {
	return &employeeHandler{employeeService: es, aggregationService: as}
}

// registerEmployeeRoutes registers routes related to employees, their payroll and advances.
func registerEmployeeRoutes(rg *gin.RouterGroup, employeeService portssvc.EmployeeSvcFacade, aggregationService portssvc.AggregationService) {
	h := newEmployeeHandler(employeeService, aggregationService)
	requests := newAdvanceRequestHandler(employeeService)

	employees := rg.Group("/employees")
	{
		employees.POST("", h.registerEmployee)
		employees.GET("", h.listEmployees)
		employees.GET("/lookup", h.lookupByQID)
		employees.GET("/:id", h.getEmployee)
		employees.PUT("/:id", h.updateEmployee)
		employees.POST("/:id/transactions", h.recordTransaction)
		employees.POST("/:id/advances", h.issueAdvance)
		employees.POST("/:id/advances/:advanceID/repay", h.repayAdvance)
		employees.GET("/:id/pending-advances", h.pendingAdvances)
		employees.GET("/:id/summary", h.employeeSummary)
		employees.GET("/:id/reconciliation", h.reconcileEmployee)
		employees.POST("/:id/advance-requests", requests.submit)
		employees.GET("/:id/advance-requests", requests.list)
	}

	advanceRequests := rg.Group("/advance-requests")
	{
		advanceRequests.POST("/:requestID/decision", requests.decide)
		advanceRequests.POST("/:requestID/disburse", requests.disburse)
	}
}

// registerEmployee godoc
// @Summary Register an employee
// @Description Creates an employee; a welcome notification is queued when an email is given
// @Tags employees
// @Accept  json
// @Produce  json
// @Param   employee body dto.CreateEmployeeRequest true "Employee details"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to register employee"
// @Security BearerAuth
// @Router /employees [post]
func (h *employeeHandler) registerEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterEmployee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	employee, err := h.employeeService.RegisterEmployee(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to register employee")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEmployeeResponse(employee, accounting.PendingAdvances(employee.Advances)))
}

// listEmployees godoc
// @Summary List employees
// @Tags employees
// @Produce  json
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Cursor from the previous page"
// @Param   department query string false "Department filter"
// @Success 200 {object} dto.ListEmployeesResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list employees"
// @Security BearerAuth
// @Router /employees [get]
func (h *employeeHandler) listEmployees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListEmployeesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListEmployees", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	res, err := h.employeeService.ListEmployees(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list employees")
		return
	}
	c.JSON(http.StatusOK, res)
}

// getEmployee godoc
// @Summary Get an employee
// @Description Returns the employee with transactions, advances and advance requests
// @Tags employees
// @Produce  json
// @Param   id path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Employee not found"
// @Failure 500 {object} map[string]string "Failed to retrieve employee"
// @Security BearerAuth
// @Router /employees/{id} [get]
func (h *employeeHandler) getEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("employee_id", c.Param("id")))

	employee, err := h.employeeService.GetEmployee(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve employee")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee, accounting.PendingAdvances(employee.Advances)))
}

// updateEmployee godoc
// @Summary Update an employee profile
// @Description Changes profile fields; pass version for an optimistic concurrency check
// @Tags employees
// @Accept  json
// @Produce  json
// @Param   id path string true "Employee ID"
// @Param   employee body dto.UpdateEmployeeRequest true "Fields to change"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Employee not found"
// @Failure 409 {object} map[string]string "Version conflict"
// @Failure 500 {object} map[string]string "Failed to update employee"
// @Security BearerAuth
// @Router /employees/{id} [put]
func (h *employeeHandler) updateEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("employee_id", c.Param("id")))
	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateEmployee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update employee")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee, accounting.PendingAdvances(employee.Advances)))
}

// recordTransaction godoc
// @Summary Record a payroll transaction
// @Description Posts a salary, bonus or deduction to the employee and mirrors it in the ledger atomically
// @Tags employees
// @Accept  json
// @Produce  json
// @Param   id path string true "Employee ID"
// @Param   transaction body dto.RecordTransactionRequest true "Transaction details"
// @Success 201 {object} dto.PayrollPostingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Employee not found"
// @Failure 500 {object} map[string]string "Failed to record transaction"
// @Security BearerAuth
// @Router /employees/{id}/transactions [post]
func (h *employeeHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("employee_id", c.Param("id")))
	var req dto.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	posting, err := h.employeeService.RecordTransaction(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record transaction")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPayrollPostingResponse(posting))
}

// issueAdvance godoc
// @Summary Issue a cash advance
// @Tags employees
// @Accept  json
// @Produce  json
// @Param   id path string true "Employee ID"
// @Param   advance body dto.IssueAdvanceRequest true "Advance details"
// @Success 201 {object} dto.PayrollPostingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Employee not found"
// @Failure 500 {object} map[string]string "Failed to issue advance"
// @Security BearerAuth
// @Router /employees/{id}/advances [post]
func (h *employeeHandler) issueAdvance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("employee_id", c.Param("id")))
	var req dto.IssueAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IssueAdvance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	posting, err := h.employeeService.IssueAdvance(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to issue advance")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPayrollPostingResponse(posting))
}

// repayAdvance godoc
// @Summary Mark an advance repaid
// @Tags employees
// @Accept  json
// @Produce  json
// @Param   id path string true "Employee ID"
// @Param   advanceID path string true "Advance ID"
// @Param   repayment body dto.RepayAdvanceRequest false "Repayment date"
// @Success 200 {object} dto.AdvanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Employee or advance not found"
// @Failure 409 {object} map[string]string "Advance already repaid"
// @Failure 500 {object} map[string]string "Failed to mark advance repaid"
// @Security BearerAuth
// @Router /employees/{id}/advances/{advanceID}/repay [post]
func (h *employeeHandler) repayAdvance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
		slog.String("employee_id", c.Param("id")),
		slog.String("advance_id", c.Param("advanceID")))
	var req dto.RepayAdvanceRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for RepayAdvance", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	advance, err := h.employeeService.MarkAdvanceRepaid(c.Request.Context(), c.Param("id"), c.Param("advanceID"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to mark advance repaid")
		return
	}
	c.JSON(http.StatusOK, dto.ToAdvanceResponse(advance))
}

// pendingAdvances godoc
// @Summary Sum of unrepaid advances
// @Tags employees
// @Produce  json
// @Param   id path string true "Employee ID"
// @Success 200 {object} dto.PendingAdvancesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Employee not found"
// @Failure 500 {object} map[string]string "Failed to compute pending advances"
// @Security BearerAuth
// @Router /employees/{id}/pending-advances [get]
func (h *employeeHandler) pendingAdvances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("employee_id", c.Param("id")))
	pending, err := h.employeeService.PendingAdvances(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute pending advances")
		return
	}
	c.JSON(http.StatusOK, dto.PendingAdvancesResponse{EmployeeID: c.Param("id"), PendingAdvances: pending})
}

// employeeSummary godoc
// @Summary Ledger-side payroll summary for an employee
// @Tags employees
// @Produce  json
// @Param   id path string true "Employee ID"
// @Success 200 {object} domain.EmployeeSummary
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Employee not found"
// @Failure 500 {object} map[string]string "Failed to build employee summary"
// @Security BearerAuth
// @Router /employees/{id}/summary [get]
func (h *employeeHandler) employeeSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("employee_id", c.Param("id")))
	summary, err := h.aggregationService.GetEmployeeSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build employee summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// reconcileEmployee godoc
// @Summary Cross-check an employee against the ledger
// @Tags employees
// @Produce  json
// @Param   id path string true "Employee ID"
// @Success 200 {object} domain.ReconciliationReport
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Employee not found"
// @Failure 500 {object} map[string]string "Failed to reconcile employee"
// @Security BearerAuth
// @Router /employees/{id}/reconciliation [get]
func (h *employeeHandler) reconcileEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("employee_id", c.Param("id")))
	report, err := h.aggregationService.ReconcileEmployee(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reconcile employee")
		return
	}
	c.JSON(http.StatusOK, report)
}

// lookupByQID godoc
// @Summary Find an employee by QID
// @Description Not found is reported as found=false, not as an error
// @Tags employees
// @Produce  json
// @Param   qid query string true "QID number"
// @Success 200 {object} dto.EmployeeLookupResponse
// @Failure 400 {object} map[string]string "qid missing"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to look up employee"
// @Security BearerAuth
// @Router /employees/lookup [get]
func (h *employeeHandler) lookupByQID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employee, found, err := h.aggregationService.LookupEmployeeByQID(c.Request.Context(), c.Query("qid"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to look up employee")
		return
	}

	res := dto.EmployeeLookupResponse{Found: found}
	if found {
		emp := dto.ToEmployeeResponse(employee, accounting.PendingAdvances(employee.Advances))
		res.Employee = &emp
	}
	c.JSON(http.StatusOK, res)
}

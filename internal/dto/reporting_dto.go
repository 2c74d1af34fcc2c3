package dto

import (
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CategoryBreakdownResponse represents totals per category, ordered by category.
type CategoryBreakdownResponse struct {
	Since      *string                 `json:"since,omitempty"`
	Categories []domain.CategoryTotals `json:"categories"`
	Totals     struct {
		Credits decimal.Decimal `json:"credits"`
		Debits  decimal.Decimal `json:"debits"`
		Net     decimal.Decimal `json:"net"`
	} `json:"totals"`
}

// MonthlyReportSummary is a monthly report without its per-employee lines.
type MonthlyReportSummary struct {
	ReportID           string          `json:"reportID"`
	Period             string          `json:"period"` // YYYY-MM
	TotalEmployees     int             `json:"totalEmployees"`
	TotalSalariesPaid  decimal.Decimal `json:"totalSalariesPaid"`
	TotalAdvancesGiven decimal.Decimal `json:"totalAdvancesGiven"`
	GeneratedAt        time.Time       `json:"generatedAt"`
}

// ListMonthlyReportsParams defines query parameters for listing monthly reports.
type ListMonthlyReportsParams struct {
	Limit     int     `form:"limit,default=12"`
	NextToken *string `form:"nextToken"`
}

// ListMonthlyReportsResponse wraps a page of report summaries, newest period first.
type ListMonthlyReportsResponse struct {
	Reports   []MonthlyReportSummary `json:"reports"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ListAuditLogsParams defines query parameters for listing audit records.
type ListAuditLogsParams struct {
	EmployeeID *string `form:"employeeId"`
	Limit      int     `form:"limit,default=50"`
	NextToken  *string `form:"nextToken"`
}

// ListAuditLogsResponse wraps a page of audit records, newest first.
type ListAuditLogsResponse struct {
	Records   []domain.AuditRecord `json:"records"`
	NextToken *string              `json:"nextToken,omitempty"`
}

// JobRunResponse is returned by the manual job triggers.
type JobRunResponse struct {
	Job        string      `json:"job"`
	StartedAt  time.Time   `json:"startedAt"`
	FinishedAt time.Time   `json:"finishedAt"`
	Result     interface{} `json:"result"`
}

// ToCategoryBreakdownResponse adds overall totals to a breakdown.
func ToCategoryBreakdownResponse(rows []domain.CategoryTotals, since *time.Time) CategoryBreakdownResponse {
	response := CategoryBreakdownResponse{Categories: rows}
	if since != nil {
		s := since.Format("2006-01-02")
		response.Since = &s
	}

	credits, debits := decimal.Zero, decimal.Zero
	for _, row := range rows {
		credits = credits.Add(row.Credits)
		debits = debits.Add(row.Debits)
	}
	response.Totals.Credits = credits
	response.Totals.Debits = debits
	response.Totals.Net = credits.Sub(debits)
	return response
}

// ToMonthlyReportSummary drops the per-employee lines from a report.
func ToMonthlyReportSummary(r *domain.MonthlyReport) MonthlyReportSummary {
	return MonthlyReportSummary{
		ReportID:           r.ReportID,
		Period:             time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
		TotalEmployees:     r.TotalEmployees,
		TotalSalariesPaid:  r.TotalSalariesPaid,
		TotalAdvancesGiven: r.TotalAdvancesGiven,
		GeneratedAt:        r.GeneratedAt,
	}
}

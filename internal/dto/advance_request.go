package dto

import (
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SubmitAdvanceRequestRequest opens a new advance request in PENDING state.
type SubmitAdvanceRequestRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"dgt0"`
	Reason string          `json:"reason" binding:"required"`
}

// DecideAdvanceRequestRequest approves or rejects a pending request.
type DecideAdvanceRequestRequest struct {
	Decision string  `json:"decision" binding:"required,oneof=approve reject"`
	Note     *string `json:"note"`
}

// DisburseAdvanceRequestRequest pays out an approved request as an advance.
type DisburseAdvanceRequestRequest struct {
	Date        *time.Time `json:"date"`
	Description string     `json:"description"`
}

// ListAdvanceRequestsParams filters advance requests by status.
type ListAdvanceRequestsParams struct {
	Status *string `form:"status"`
}

// AdvanceRequestResponse defines the data returned for an advance request.
type AdvanceRequestResponse struct {
	RequestID    string                      `json:"requestID"`
	EmployeeID   string                      `json:"employeeID"`
	Amount       decimal.Decimal             `json:"amount"`
	Reason       string                      `json:"reason"`
	Status       domain.AdvanceRequestStatus `json:"status"`
	RequestedBy  string                      `json:"requestedBy"`
	RequestedAt  time.Time                   `json:"requestedAt"`
	DecidedBy    *string                     `json:"decidedBy,omitempty"`
	DecidedAt    *time.Time                  `json:"decidedAt,omitempty"`
	DecisionNote *string                     `json:"decisionNote,omitempty"`
	AdvanceID    *string                     `json:"advanceID,omitempty"`
}

// ToAdvanceRequestResponse converts a domain.AdvanceRequest.
func ToAdvanceRequestResponse(r *domain.AdvanceRequest) AdvanceRequestResponse {
	return AdvanceRequestResponse{
		RequestID:    r.RequestID,
		EmployeeID:   r.EmployeeID,
		Amount:       r.Amount,
		Reason:       r.Reason,
		Status:       r.Status,
		RequestedBy:  r.RequestedBy,
		RequestedAt:  r.RequestedAt,
		DecidedBy:    r.DecidedBy,
		DecidedAt:    r.DecidedAt,
		DecisionNote: r.DecisionNote,
		AdvanceID:    r.AdvanceID,
	}
}

// ToAdvanceRequestResponses converts a slice of domain.AdvanceRequest.
func ToAdvanceRequestResponses(reqs []domain.AdvanceRequest) []AdvanceRequestResponse {
	res := make([]AdvanceRequestResponse, len(reqs))
	for i := range reqs {
		res[i] = ToAdvanceRequestResponse(&reqs[i])
	}
	return res
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdvanceRequestStatus is the state of an employee's request for an advance.
type AdvanceRequestStatus string

const (
	RequestPending   AdvanceRequestStatus = "PENDING"
	RequestApproved  AdvanceRequestStatus = "APPROVED"
	RequestRejected  AdvanceRequestStatus = "REJECTED"
	RequestDisbursed AdvanceRequestStatus = "DISBURSED"
)

// allowed transitions; REJECTED and DISBURSED are terminal.
var advanceRequestTransitions = map[AdvanceRequestStatus][]AdvanceRequestStatus{
	RequestPending:  {RequestApproved, RequestRejected},
	RequestApproved: {RequestDisbursed},
}

// CanTransitionTo reports whether moving from s to next is a legal step.
func (s AdvanceRequestStatus) CanTransitionTo(next AdvanceRequestStatus) bool {
	for _, allowed := range advanceRequestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s AdvanceRequestStatus) IsTerminal() bool {
	return len(advanceRequestTransitions[s]) == 0
}

// AdvanceRequest is an employee's request that must be approved before cash is disbursed.
type AdvanceRequest struct {
	RequestID    string               `json:"requestID"`
	EmployeeID   string               `json:"employeeID"`
	Amount       decimal.Decimal      `json:"amount"`
	Reason       string               `json:"reason"`
	Status       AdvanceRequestStatus `json:"status"`
	RequestedBy  string               `json:"requestedBy"`
	RequestedAt  time.Time            `json:"requestedAt"`
	DecidedBy    *string              `json:"decidedBy,omitempty"`
	DecidedAt    *time.Time           `json:"decidedAt,omitempty"`
	DecisionNote *string              `json:"decisionNote,omitempty"`
	AdvanceID    *string              `json:"advanceID,omitempty"`
}

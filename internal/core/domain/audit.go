package domain

import "time"

// AuditEventType names the mutation an audit record describes.
type AuditEventType string

const (
	AuditEmployeeCreated         AuditEventType = "EMPLOYEE_CREATED"
	AuditEmployeeUpdated         AuditEventType = "EMPLOYEE_UPDATED"
	AuditTransactionAdded        AuditEventType = "TRANSACTION_ADDED"
	AuditAdvanceAdded            AuditEventType = "ADVANCE_ADDED"
	AuditAdvanceUpdated          AuditEventType = "ADVANCE_UPDATED"
	AuditAdvanceRequestSubmitted AuditEventType = "ADVANCE_REQUEST_SUBMITTED"
	AuditAdvanceRequestApproved  AuditEventType = "ADVANCE_REQUEST_APPROVED"
	AuditAdvanceRequestRejected  AuditEventType = "ADVANCE_REQUEST_REJECTED"
	AuditAdvanceRequestDisbursed AuditEventType = "ADVANCE_REQUEST_DISBURSED"
	AuditCustomerDeleted         AuditEventType = "CUSTOMER_DELETED"
	AuditInvoiceAdded            AuditEventType = "INVOICE_ADDED"
	AuditInvoicePaid             AuditEventType = "INVOICE_PAID"
	AuditLedgerBalanceReconciled AuditEventType = "LEDGER_BALANCE_RECONCILED"
)

// AuditRecord is an append-only record emitted at the point of mutation.
type AuditRecord struct {
	AuditID    string                 `json:"auditID"`
	EventType  AuditEventType         `json:"type"`
	EmployeeID *string                `json:"employeeID,omitempty"`
	Payload    map[string]interface{} `json:"payload"`
	Metadata   map[string]interface{} `json:"metadata"`
	CreatedAt  time.Time              `json:"timestamp"`
}

package mapping

import (
	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	"github.com/SscSPs/staff_ledger_app/internal/models"
)

// ToModelEmployee converts a domain Employee to a model Employee
func ToModelEmployee(d domain.Employee) models.Employee {
	return models.Employee{
		EmployeeID:     d.EmployeeID,
		Name:           d.Name,
		Email:          nullableString(d.Email),
		QIDNumber:      nullableString(d.QID.Number),
		QIDExpiry:      d.QID.Expiry,
		PassportNumber: nullableString(d.Passport.Number),
		PassportExpiry: d.Passport.Expiry,
		Salary:         d.Salary,
		Department:     d.Department,
		TotalPaid:      d.TotalPaid,
		Version:        d.Version,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEmployee converts a model Employee to a domain Employee without sub-collections
func ToDomainEmployee(m models.Employee) domain.Employee {
	return domain.Employee{
		EmployeeID:   m.EmployeeID,
		Name:         m.Name,
		Email:        derefString(m.Email),
		QID:          domain.IdentityDocument{Number: derefString(m.QIDNumber), Expiry: m.QIDExpiry},
		Passport:     domain.IdentityDocument{Number: derefString(m.PassportNumber), Expiry: m.PassportExpiry},
		Salary:       m.Salary,
		Department:   m.Department,
		TotalPaid:    m.TotalPaid,
		Version:      m.Version,
		Transactions: []domain.EmployeeTransaction{},
		Advances:     []domain.Advance{},
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelEmployeeTransaction converts a domain EmployeeTransaction
func ToModelEmployeeTransaction(d domain.EmployeeTransaction) models.EmployeeTransaction {
	return models.EmployeeTransaction{
		TransactionID: d.TransactionID,
		EmployeeID:    d.EmployeeID,
		TxnDate:       d.Date,
		Amount:        d.Amount,
		TxnType:       string(d.Type),
		Description:   d.Description,
		ProcessedBy:   d.ProcessedBy,
		LedgerEntryID: d.LedgerEntryID,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainEmployeeTransaction converts a model EmployeeTransaction
func ToDomainEmployeeTransaction(m models.EmployeeTransaction) domain.EmployeeTransaction {
	return domain.EmployeeTransaction{
		TransactionID: m.TransactionID,
		EmployeeID:    m.EmployeeID,
		Date:          m.TxnDate,
		Amount:        m.Amount,
		Type:          domain.EmployeeTransactionType(m.TxnType),
		Description:   m.Description,
		ProcessedBy:   m.ProcessedBy,
		LedgerEntryID: m.LedgerEntryID,
		CreatedAt:     m.CreatedAt,
	}
}

// ToModelAdvance converts a domain Advance
func ToModelAdvance(d domain.Advance) models.EmployeeAdvance {
	return models.EmployeeAdvance{
		AdvanceID:     d.AdvanceID,
		EmployeeID:    d.EmployeeID,
		AdvanceDate:   d.Date,
		Amount:        d.Amount,
		Repaid:        d.Repaid,
		RepaidDate:    d.RepaidDate,
		Description:   d.Description,
		LedgerEntryID: d.LedgerEntryID,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainAdvance converts a model EmployeeAdvance
func ToDomainAdvance(m models.EmployeeAdvance) domain.Advance {
	return domain.Advance{
		AdvanceID:     m.AdvanceID,
		EmployeeID:    m.EmployeeID,
		Date:          m.AdvanceDate,
		Amount:        m.Amount,
		Repaid:        m.Repaid,
		RepaidDate:    m.RepaidDate,
		Description:   m.Description,
		LedgerEntryID: m.LedgerEntryID,
		CreatedAt:     m.CreatedAt,
	}
}

// ToModelAdvanceRequest converts a domain AdvanceRequest
func ToModelAdvanceRequest(d domain.AdvanceRequest) models.AdvanceRequest {
	return models.AdvanceRequest{
		RequestID:    d.RequestID,
		EmployeeID:   d.EmployeeID,
		Amount:       d.Amount,
		Reason:       d.Reason,
		Status:       string(d.Status),
		RequestedBy:  d.RequestedBy,
		RequestedAt:  d.RequestedAt,
		DecidedBy:    d.DecidedBy,
		DecidedAt:    d.DecidedAt,
		DecisionNote: d.DecisionNote,
		AdvanceID:    d.AdvanceID,
	}
}

// ToDomainAdvanceRequest converts a model AdvanceRequest
func ToDomainAdvanceRequest(m models.AdvanceRequest) domain.AdvanceRequest {
	return domain.AdvanceRequest{
		RequestID:    m.RequestID,
		EmployeeID:   m.EmployeeID,
		Amount:       m.Amount,
		Reason:       m.Reason,
		Status:       domain.AdvanceRequestStatus(m.Status),
		RequestedBy:  m.RequestedBy,
		RequestedAt:  m.RequestedAt,
		DecidedBy:    m.DecidedBy,
		DecidedAt:    m.DecidedAt,
		DecisionNote: m.DecisionNote,
		AdvanceID:    m.AdvanceID,
	}
}

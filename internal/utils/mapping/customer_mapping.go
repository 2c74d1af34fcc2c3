package mapping

import (
	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	"github.com/SscSPs/staff_ledger_app/internal/models"
)

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:    d.CustomerID,
		Name:          d.Name,
		ContactPerson: d.ContactPerson,
		TotalInvoiced: d.TotalInvoiced,
		TotalPaid:     d.TotalPaid,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer without invoices
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:    m.CustomerID,
		Name:          m.Name,
		ContactPerson: m.ContactPerson,
		Invoices:      []domain.Invoice{},
		TotalInvoiced: m.TotalInvoiced,
		TotalPaid:     m.TotalPaid,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:  d.InvoiceID,
		CustomerID: d.CustomerID,
		Amount:     d.Amount,
		DueDate:    d.DueDate,
		Status:     string(d.Status),
		PaidDate:   d.PaidDate,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:  m.InvoiceID,
		CustomerID: m.CustomerID,
		Amount:     m.Amount,
		DueDate:    m.DueDate,
		Status:     domain.InvoiceStatus(m.Status),
		PaidDate:   m.PaidDate,
		CreatedAt:  m.CreatedAt,
	}
}

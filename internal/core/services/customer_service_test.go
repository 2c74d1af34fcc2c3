package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/apperrors"
	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	"github.com/SscSPs/staff_ledger_app/internal/core/services"
	"github.com/SscSPs/staff_ledger_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CustomerServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCustomerRepository
	service  *services.CustomerService
}

func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCustomerRepository)
	suite.service = services.NewCustomerService(suite.mockRepo, services.WithClock(fixedClock))
}

func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer() {
	ctx := context.Background()
	suite.mockRepo.On("CreateCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.Name == "Gulf Trading" && c.ContactPerson == "Omar" &&
			c.TotalInvoiced.IsZero() && c.TotalPaid.IsZero() && len(c.Invoices) == 0 &&
			c.CreatedBy == "sales"
	})).Return(nil).Once()

	customer, err := suite.service.CreateCustomer(ctx, dto.CreateCustomerRequest{Name: " Gulf Trading ", ContactPerson: "Omar"}, "sales")

	suite.Require().NoError(err)
	suite.NotEmpty(customer.CustomerID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_BlankName() {
	_, err := suite.service.CreateCustomer(context.Background(), dto.CreateCustomerRequest{Name: " "}, "sales")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CustomerServiceTestSuite) TestAddInvoice() {
	ctx := context.Background()
	due := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
	suite.mockRepo.On("AddInvoice", ctx,
		mock.MatchedBy(func(inv domain.Invoice) bool {
			return inv.CustomerID == "cus-1" && inv.Status == domain.InvoicePending &&
				inv.Amount.Equal(dec("1500")) && inv.DueDate.Equal(due)
		}),
		mock.MatchedBy(func(a domain.AuditRecord) bool {
			return a.EventType == domain.AuditInvoiceAdded && a.EmployeeID == nil && a.Metadata["userID"] == "sales"
		}),
	).Return(&domain.Customer{CustomerID: "cus-1", TotalInvoiced: dec("1500")}, nil).Once()

	customer, err := suite.service.AddInvoice(ctx, "cus-1", dto.AddInvoiceRequest{Amount: dec("1500"), DueDate: due}, "sales")

	suite.Require().NoError(err)
	suite.True(customer.Outstanding().Equal(dec("1500")))
}

func (suite *CustomerServiceTestSuite) TestAddInvoice_Validation() {
	ctx := context.Background()
	_, err := suite.service.AddInvoice(ctx, "cus-1", dto.AddInvoiceRequest{Amount: dec("0"), DueDate: fixedNow}, "sales")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.AddInvoice(ctx, "cus-1", dto.AddInvoiceRequest{Amount: dec("10")}, "sales")
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "AddInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CustomerServiceTestSuite) TestMarkInvoicePaid_BooksRevenue() {
	ctx := context.Background()
	paid := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("MarkInvoicePaid", ctx, "cus-1", "inv-1", paid,
		mock.MatchedBy(func(e domain.LedgerEntry) bool {
			return e.Type == domain.Credit && e.Category == domain.CategoryRevenue &&
				e.CustomerID != nil && *e.CustomerID == "cus-1" &&
				e.Description == "Payment for invoice inv-1" && e.Date.Equal(paid)
		}),
		mock.MatchedBy(func(a domain.AuditRecord) bool { return a.EventType == domain.AuditInvoicePaid }),
	).Return(
		&domain.Invoice{InvoiceID: "inv-1", Amount: dec("1500"), Status: domain.InvoicePaid, PaidDate: &paid},
		&domain.LedgerEntry{EntryID: "e1", Amount: dec("1500"), Type: domain.Credit},
		nil,
	).Once()

	invoice, entry, err := suite.service.MarkInvoicePaid(ctx, "cus-1", "inv-1", dto.PayInvoiceRequest{PaidDate: &paid}, "sales")

	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePaid, invoice.Status)
	suite.True(entry.Amount.Equal(invoice.Amount))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestMarkInvoicePaid_AlreadyPaid() {
	ctx := context.Background()
	suite.mockRepo.On("MarkInvoicePaid", ctx, "cus-1", "inv-1", fixedNow, mock.Anything, mock.Anything).
		Return(nil, nil, apperrors.NewConflictError("invoice inv-1 is already paid")).Once()

	_, _, err := suite.service.MarkInvoicePaid(ctx, "cus-1", "inv-1", dto.PayInvoiceRequest{}, "sales")

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Equal(409, apperrors.StatusCode(err))
}

func (suite *CustomerServiceTestSuite) TestDeleteCustomer_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteCustomer", ctx, "missing", mock.AnythingOfType("domain.AuditRecord")).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteCustomer(ctx, "missing", "sales")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CustomerServiceTestSuite) TestDeleteCustomer_WritesAudit() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteCustomer", ctx, "cus-1", mock.MatchedBy(func(a domain.AuditRecord) bool {
		return a.AuditID != "" &&
			a.EventType == domain.AuditCustomerDeleted &&
			a.Payload["customerID"] == "cus-1" &&
			a.CreatedAt.Equal(fixedNow)
	})).Return(nil).Once()

	err := suite.service.DeleteCustomer(ctx, "cus-1", "sales")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestListCustomers_CapsLimit() {
	ctx := context.Background()
	suite.mockRepo.On("ListCustomers", ctx, 200, (*string)(nil)).Return([]domain.Customer{}, nil, nil).Once()

	customers, next, err := suite.service.ListCustomers(ctx, dto.ListCustomersParams{Limit: 5000})

	suite.Require().NoError(err)
	suite.Empty(customers)
	suite.Nil(next)
}

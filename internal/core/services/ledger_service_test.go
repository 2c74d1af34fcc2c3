package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/staff_ledger_app/internal/apperrors"
	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/staff_ledger_app/internal/core/services"
	"github.com/SscSPs/staff_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockRepo *MockLedgerRepository
	service  *services.LedgerService
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockLedgerRepository)
	suite.service = services.NewLedgerService(suite.mockRepo, dec("0.10"), services.WithClock(fixedClock))
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (suite *LedgerServiceTestSuite) TestAppendEntry_Success() {
	ctx := context.Background()
	req := dto.CreateLedgerEntryRequest{
		Type:        domain.Debit,
		Amount:      dec("1200"),
		Description: "  March rent ",
		Category:    domain.CategoryRent,
	}

	suite.mockRepo.On("AppendEntry", ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.EntryID != "" &&
			e.LedgerID == domain.MainLedgerID &&
			e.Description == "March rent" &&
			e.Date.Equal(fixedNow) &&
			e.CreatedBy == "user-1" &&
			e.EmployeeID == nil
	})).Return(&domain.LedgerEntry{EntryID: "e1", Seq: 7, Category: domain.CategoryRent}, nil).Once()

	entry, err := suite.service.AppendEntry(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(int64(7), entry.Seq)
	suite.Equal(domain.CategoryRent, entry.Category)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestAppendEntry_UnknownCategoryAccepted() {
	ctx := context.Background()
	req := dto.CreateLedgerEntryRequest{Type: domain.Credit, Amount: dec("5"), Description: "misc", Category: "lottery"}

	suite.mockRepo.On("AppendEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).
		Return(&domain.LedgerEntry{EntryID: "e1", Category: "lottery"}, nil).Once()

	entry, err := suite.service.AppendEntry(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.UncategorizedLabel, entry.Category.Label())
}

func (suite *LedgerServiceTestSuite) TestAppendEntry_RejectsInvalidInput() {
	ctx := context.Background()
	cases := map[string]dto.CreateLedgerEntryRequest{
		"payroll category":   {Type: domain.Debit, Amount: dec("100"), Description: "salary", Category: domain.CategoryPayroll},
		"advance category":   {Type: domain.Debit, Amount: dec("100"), Description: "advance", Category: domain.CategoryEmployeeAdvance},
		"zero amount":        {Type: domain.Debit, Amount: dec("0"), Description: "rent", Category: domain.CategoryRent},
		"negative amount":    {Type: domain.Credit, Amount: dec("-3"), Description: "sale", Category: domain.CategorySales},
		"blank description":  {Type: domain.Credit, Amount: dec("3"), Description: "   ", Category: domain.CategorySales},
		"invalid entry type": {Type: "TRANSFER", Amount: dec("3"), Description: "x", Category: domain.CategorySales},
	}
	for name, req := range cases {
		_, err := suite.service.AppendEntry(ctx, req, "user-1")
		suite.ErrorIs(err, apperrors.ErrValidation, name)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "AppendEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestListEntries_BuildsFilter() {
	ctx := context.Background()
	next := "token-2"
	params := dto.ListLedgerEntriesParams{
		Limit:      0,
		NextToken:  strPtr("token-1"),
		Category:   strPtr("rent"),
		EmployeeID: strPtr(" "),
		Since:      strPtr("2024-01-31"),
	}

	suite.mockRepo.On("ListEntries", ctx, domain.MainLedgerID, mock.MatchedBy(func(f portsrepo.LedgerEntryFilter) bool {
		return f.Category != nil && *f.Category == domain.CategoryRent &&
			f.EmployeeID == nil &&
			f.Since != nil && f.Since.Day() == 31
	}), 50, params.NextToken).Return([]domain.LedgerEntry{{EntryID: "e1", Category: domain.CategoryRent}}, &next, nil).Once()

	res, err := suite.service.ListEntries(ctx, params)

	suite.Require().NoError(err)
	suite.Len(res.Entries, 1)
	suite.Equal("Rent", res.Entries[0].CategoryLabel)
	suite.Equal(&next, res.NextToken)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestListEntries_InvalidSince() {
	_, err := suite.service.ListEntries(context.Background(), dto.ListLedgerEntriesParams{Since: strPtr("31/01/2024")})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestGetSummary_IncludesOutstanding() {
	ctx := context.Background()
	empID := "emp-1"
	suite.mockRepo.On("GetLedger", ctx, domain.MainLedgerID).
		Return(&domain.Ledger{LedgerID: domain.MainLedgerID, Balance: dec("-900"), EntryCount: 3}, nil).Once()
	suite.mockRepo.On("ListAllEntries", ctx, domain.MainLedgerID).Return([]domain.LedgerEntry{
		{Type: domain.Debit, Amount: dec("1000"), Category: domain.CategoryPayroll, EmployeeID: &empID},
		{Type: domain.Debit, Amount: dec("500"), Category: domain.CategoryRent},
		{Type: domain.Credit, Amount: dec("600"), Category: domain.CategorySales},
	}, nil).Once()

	ledger, err := suite.service.GetSummary(ctx)

	suite.Require().NoError(err)
	suite.True(ledger.Balance.Equal(dec("-900")))
	suite.True(ledger.Outstanding.Equal(dec("100")), ledger.Outstanding.String())
}

func (suite *LedgerServiceTestSuite) TestReconcileBalance_NoDrift() {
	ctx := context.Background()
	suite.mockRepo.On("GetLedger", ctx, domain.MainLedgerID).
		Return(&domain.Ledger{Balance: dec("50"), EntryCount: 2}, nil).Once()
	suite.mockRepo.On("ListAllEntries", ctx, domain.MainLedgerID).Return([]domain.LedgerEntry{
		{Type: domain.Credit, Amount: dec("80")},
		{Type: domain.Debit, Amount: dec("30")},
	}, nil).Once()

	result, err := suite.service.ReconcileBalance(ctx, "jobs")

	suite.Require().NoError(err)
	suite.False(result.Repaired)
	suite.True(result.Drift.IsZero())
	suite.mockRepo.AssertNotCalled(suite.T(), "ResetBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReconcileBalance_RepairsDrift() {
	ctx := context.Background()
	suite.mockRepo.On("GetLedger", ctx, domain.MainLedgerID).
		Return(&domain.Ledger{Balance: dec("70"), EntryCount: 2}, nil).Once()
	suite.mockRepo.On("ListAllEntries", ctx, domain.MainLedgerID).Return([]domain.LedgerEntry{
		{Type: domain.Credit, Amount: dec("80")},
		{Type: domain.Debit, Amount: dec("30")},
	}, nil).Once()
	suite.mockRepo.On("ResetBalance", ctx, domain.MainLedgerID, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(dec("50"))
	}), int64(2), mock.MatchedBy(func(a domain.AuditRecord) bool {
		return a.EventType == domain.AuditLedgerBalanceReconciled && a.Payload["drift"] == "-20"
	})).Return(nil).Once()

	result, err := suite.service.ReconcileBalance(ctx, "jobs")

	suite.Require().NoError(err)
	suite.True(result.Repaired)
	suite.True(result.Drift.Equal(dec("-20")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestReconcileBalance_ConcurrentAppendConflicts() {
	ctx := context.Background()
	suite.mockRepo.On("GetLedger", ctx, domain.MainLedgerID).
		Return(&domain.Ledger{Balance: dec("80"), EntryCount: 1}, nil).Once()
	suite.mockRepo.On("ListAllEntries", ctx, domain.MainLedgerID).Return([]domain.LedgerEntry{
		{Type: domain.Credit, Amount: dec("80")},
		{Type: domain.Debit, Amount: dec("30")},
	}, nil).Once()

	_, err := suite.service.ReconcileBalance(ctx, "jobs")

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LedgerServiceTestSuite) TestReconcileBalance_AppendBeforeResetConflicts() {
	ctx := context.Background()
	suite.mockRepo.On("GetLedger", ctx, domain.MainLedgerID).
		Return(&domain.Ledger{Balance: dec("70"), EntryCount: 2}, nil).Once()
	suite.mockRepo.On("ListAllEntries", ctx, domain.MainLedgerID).Return([]domain.LedgerEntry{
		{Type: domain.Credit, Amount: dec("80")},
		{Type: domain.Debit, Amount: dec("30")},
	}, nil).Once()
	suite.mockRepo.On("ResetBalance", ctx, domain.MainLedgerID, mock.Anything, int64(2), mock.Anything).
		Return(apperrors.NewConflictError("ledger main changed during reconciliation, retry")).Once()

	result, err := suite.service.ReconcileBalance(ctx, "jobs")

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Equal(409, apperrors.StatusCode(err))
}

func (suite *LedgerServiceTestSuite) TestGetBalance_StorageError() {
	ctx := context.Background()
	storageErr := apperrors.NewAppError(500, "boom", errors.New("connection reset"))
	suite.mockRepo.On("GetLedger", ctx, domain.MainLedgerID).Return(nil, storageErr).Once()

	_, err := suite.service.GetBalance(ctx)

	suite.ErrorIs(err, storageErr)
	suite.Equal(500, apperrors.StatusCode(err))
}

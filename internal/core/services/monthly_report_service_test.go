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

type MonthlyReportServiceTestSuite struct {
	suite.Suite
	employeeRepo *MockEmployeeRepository
	reportRepo   *MockMonthlyReportRepository
	recorder     *MockJobEventRecorder
	location     *time.Location
	service      *services.MonthlyReportService
}

func (suite *MonthlyReportServiceTestSuite) SetupTest() {
	loc, err := time.LoadLocation("Asia/Qatar")
	suite.Require().NoError(err)
	suite.location = loc
	suite.employeeRepo = new(MockEmployeeRepository)
	suite.reportRepo = new(MockMonthlyReportRepository)
	suite.recorder = new(MockJobEventRecorder)
	suite.service = services.NewMonthlyReportService(suite.employeeRepo, suite.reportRepo, loc,
		services.WithClock(fixedClock),
		services.WithJobEventRecorder(suite.recorder))
}

func TestMonthlyReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MonthlyReportServiceTestSuite))
}

func (suite *MonthlyReportServiceTestSuite) TestGenerateMonthlyReport_PreviousMonth() {
	ctx := context.Background()
	// 2024-04-01 00:30 in Doha is still March 31 in UTC.
	now := time.Date(2024, 4, 1, 0, 30, 0, 0, suite.location)
	inMarch := time.Date(2024, 3, 31, 23, 0, 0, 0, suite.location)
	inApril := time.Date(2024, 4, 1, 0, 0, 0, 0, suite.location)

	suite.employeeRepo.On("ListAllEmployees", ctx).Return([]domain.Employee{
		{
			EmployeeID: "emp-1", Name: "Ahmed",
			Transactions: []domain.EmployeeTransaction{
				{Amount: dec("3000"), Type: domain.TxnSalary, Date: inMarch},
				{Amount: dec("500"), Type: domain.TxnBonus, Date: inApril},
			},
			Advances: []domain.Advance{{Amount: dec("200"), Date: inMarch}},
		},
		{EmployeeID: "emp-2", Name: "Idle"},
	}, nil).Once()
	suite.reportRepo.On("UpsertMonthlyReport", ctx, mock.MatchedBy(func(r domain.MonthlyReport) bool {
		return r.Year == 2024 && r.Month == 3 &&
			r.TotalEmployees == 2 && len(r.Employees) == 2 &&
			r.TotalSalariesPaid.Equal(dec("3000")) &&
			r.TotalAdvancesGiven.Equal(dec("200")) &&
			r.WindowEnd.Equal(inApril) &&
			r.GeneratedBy == "scheduler"
	})).Return(&domain.MonthlyReport{ReportID: "r1", Year: 2024, Month: 3, TotalEmployees: 2}, nil).Once()
	suite.recorder.On("CaptureJobRun", services.JobMonthlyReport, map[string]any{"period": "2024-03", "employees": 2}).Once()

	report, err := suite.service.GenerateMonthlyReport(ctx, now, "scheduler")

	suite.Require().NoError(err)
	suite.Equal("r1", report.ReportID)
	suite.reportRepo.AssertExpectations(suite.T())
	suite.recorder.AssertExpectations(suite.T())
}

func (suite *MonthlyReportServiceTestSuite) TestGenerateMonthlyReport_JanuaryRollsBackYear() {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 6, 0, 0, 0, suite.location)
	suite.employeeRepo.On("ListAllEmployees", ctx).Return([]domain.Employee{}, nil).Once()
	suite.reportRepo.On("UpsertMonthlyReport", ctx, mock.MatchedBy(func(r domain.MonthlyReport) bool {
		return r.Year == 2023 && r.Month == 12 && r.TotalEmployees == 0
	})).Return(&domain.MonthlyReport{Year: 2023, Month: 12}, nil).Once()
	suite.recorder.On("CaptureJobRun", services.JobMonthlyReport, mock.Anything).Once()

	_, err := suite.service.GenerateMonthlyReport(ctx, now, "cli")

	suite.Require().NoError(err)
	suite.reportRepo.AssertExpectations(suite.T())
}

func (suite *MonthlyReportServiceTestSuite) TestGetMonthlyReport_Validation() {
	ctx := context.Background()
	_, err := suite.service.GetMonthlyReport(ctx, 2024, 13)
	suite.ErrorIs(err, apperrors.ErrValidation)
	_, err = suite.service.GetMonthlyReport(ctx, 0, 5)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.reportRepo.AssertNotCalled(suite.T(), "FindMonthlyReport", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MonthlyReportServiceTestSuite) TestGetMonthlyReport_NotFound() {
	ctx := context.Background()
	suite.reportRepo.On("FindMonthlyReport", ctx, 2024, 2).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetMonthlyReport(ctx, 2024, 2)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *MonthlyReportServiceTestSuite) TestListMonthlyReports() {
	ctx := context.Background()
	suite.reportRepo.On("ListMonthlyReports", ctx, 50, (*string)(nil)).Return([]domain.MonthlyReport{
		{ReportID: "r2", Year: 2024, Month: 2},
		{ReportID: "r1", Year: 2024, Month: 1},
	}, nil, nil).Once()

	res, err := suite.service.ListMonthlyReports(ctx, dto.ListMonthlyReportsParams{})

	suite.Require().NoError(err)
	suite.Len(res.Reports, 2)
	suite.Nil(res.NextToken)
}

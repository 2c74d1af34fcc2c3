package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/apperrors"
	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	"github.com/SscSPs/staff_ledger_app/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExpirationServiceTestSuite struct {
	suite.Suite
	employeeRepo     *MockEmployeeRepository
	alertRepo        *MockAlertRepository
	notificationRepo *MockNotificationRepository
	publisher        *MockPublisher
	recorder         *MockJobEventRecorder
	service          *services.ExpirationService
}

func (suite *ExpirationServiceTestSuite) SetupTest() {
	suite.employeeRepo = new(MockEmployeeRepository)
	suite.alertRepo = new(MockAlertRepository)
	suite.notificationRepo = new(MockNotificationRepository)
	suite.publisher = new(MockPublisher)
	suite.recorder = new(MockJobEventRecorder)
	suite.service = services.NewExpirationService(suite.employeeRepo, suite.alertRepo, suite.notificationRepo, 90,
		services.WithClock(fixedClock),
		services.WithNotificationPublisher(suite.publisher),
		services.WithJobEventRecorder(suite.recorder))
}

func TestExpirationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpirationServiceTestSuite))
}

func expiringIn(days int) *time.Time {
	t := fixedNow.AddDate(0, 0, days)
	return &t
}

func (suite *ExpirationServiceTestSuite) TestCheckExpirations_ReplacesSnapshotAndQueuesDigest() {
	ctx := context.Background()
	suite.employeeRepo.On("ListAllEmployees", ctx).Return([]domain.Employee{
		{
			EmployeeID: "emp-1", Name: "Ahmed",
			QID:      domain.IdentityDocument{Number: "284", Expiry: expiringIn(30)},
			Passport: domain.IdentityDocument{Number: "P1", Expiry: expiringIn(-3)},
		},
		{
			EmployeeID: "emp-2", Name: "Sara",
			QID: domain.IdentityDocument{Number: "285", Expiry: expiringIn(90)},
		},
		{EmployeeID: "emp-3", Name: "No documents"},
	}, nil).Once()
	suite.alertRepo.On("ReplaceExpirationSnapshot", ctx, mock.MatchedBy(func(s domain.ExpirationSnapshot) bool {
		return s.Count == 2 && len(s.Alerts) == 2 && s.LastChecked.Equal(fixedNow)
	})).Return(nil).Once()
	suite.notificationRepo.On("SaveNotification", ctx, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Kind == domain.NotificationExpirationDigest &&
			n.Recipient == "payroll-admin" &&
			n.Payload["expired"] == 1 && n.Payload["expiring"] == 1
	})).Return(nil).Once()
	suite.publisher.On("Publish", ctx, mock.AnythingOfType("domain.Notification")).Return(nil).Once()
	suite.recorder.On("CaptureJobRun", services.JobCheckExpirations, map[string]any{"employees": 3, "alerts": 2}).Once()

	snapshot, err := suite.service.CheckExpirations(ctx, fixedNow)

	suite.Require().NoError(err)
	suite.Equal(2, snapshot.Count)
	kinds := map[domain.DocumentKind]domain.AlertKind{}
	for _, a := range snapshot.Alerts {
		kinds[a.Document] = a.Kind
	}
	suite.Equal(domain.AlertExpiring, kinds[domain.DocumentQID])
	suite.Equal(domain.AlertExpired, kinds[domain.DocumentPassport])
	suite.alertRepo.AssertExpectations(suite.T())
	suite.notificationRepo.AssertExpectations(suite.T())
	suite.publisher.AssertExpectations(suite.T())
	suite.recorder.AssertExpectations(suite.T())
}

func (suite *ExpirationServiceTestSuite) TestCheckExpirations_NoAlertsNoDigest() {
	ctx := context.Background()
	suite.employeeRepo.On("ListAllEmployees", ctx).Return([]domain.Employee{
		{EmployeeID: "emp-1", QID: domain.IdentityDocument{Number: "284", Expiry: expiringIn(400)}},
	}, nil).Once()
	suite.alertRepo.On("ReplaceExpirationSnapshot", ctx, mock.MatchedBy(func(s domain.ExpirationSnapshot) bool {
		return s.Count == 0 && s.Alerts != nil
	})).Return(nil).Once()
	suite.recorder.On("CaptureJobRun", services.JobCheckExpirations, mock.Anything).Once()

	snapshot, err := suite.service.CheckExpirations(ctx, fixedNow)

	suite.Require().NoError(err)
	suite.Zero(snapshot.Count)
	suite.notificationRepo.AssertNotCalled(suite.T(), "SaveNotification", mock.Anything, mock.Anything)
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *ExpirationServiceTestSuite) TestCheckExpirations_DigestFailureIsLogged() {
	ctx := context.Background()
	suite.employeeRepo.On("ListAllEmployees", ctx).Return([]domain.Employee{
		{EmployeeID: "emp-1", QID: domain.IdentityDocument{Number: "284", Expiry: expiringIn(1)}},
	}, nil).Once()
	suite.alertRepo.On("ReplaceExpirationSnapshot", ctx, mock.Anything).Return(nil).Once()
	suite.notificationRepo.On("SaveNotification", ctx, mock.Anything).Return(errors.New("insert failed")).Once()
	suite.recorder.On("CaptureJobRun", services.JobCheckExpirations, mock.Anything).Once()

	snapshot, err := suite.service.CheckExpirations(ctx, fixedNow)

	suite.Require().NoError(err)
	suite.Equal(1, snapshot.Count)
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *ExpirationServiceTestSuite) TestCheckExpirations_RepeatRunSameSnapshotNewDigest() {
	ctx := context.Background()
	suite.employeeRepo.On("ListAllEmployees", ctx).Return([]domain.Employee{
		{EmployeeID: "emp-1", QID: domain.IdentityDocument{Number: "284", Expiry: expiringIn(10)}},
	}, nil).Twice()
	suite.alertRepo.On("ReplaceExpirationSnapshot", ctx, mock.Anything).Return(nil).Twice()
	suite.notificationRepo.On("SaveNotification", ctx, mock.Anything).Return(nil).Twice()
	suite.publisher.On("Publish", ctx, mock.Anything).Return(nil).Twice()
	suite.recorder.On("CaptureJobRun", services.JobCheckExpirations, mock.Anything).Twice()

	first, err := suite.service.CheckExpirations(ctx, fixedNow)
	suite.Require().NoError(err)
	second, err := suite.service.CheckExpirations(ctx, fixedNow)
	suite.Require().NoError(err)

	suite.Equal(first, second)
	suite.notificationRepo.AssertNumberOfCalls(suite.T(), "SaveNotification", 2)
	suite.publisher.AssertNumberOfCalls(suite.T(), "Publish", 2)
}

func (suite *ExpirationServiceTestSuite) TestCheckExpirations_StoreFailure() {
	ctx := context.Background()
	suite.employeeRepo.On("ListAllEmployees", ctx).Return([]domain.Employee{}, nil).Once()
	suite.alertRepo.On("ReplaceExpirationSnapshot", ctx, mock.Anything).Return(errors.New("write failed")).Once()

	_, err := suite.service.CheckExpirations(ctx, fixedNow)

	suite.Error(err)
	suite.recorder.AssertNotCalled(suite.T(), "CaptureJobRun", mock.Anything, mock.Anything)
}

func (suite *ExpirationServiceTestSuite) TestGetExpirationAlerts_EmptyBeforeFirstScan() {
	ctx := context.Background()
	suite.alertRepo.On("GetExpirationSnapshot", ctx).Return(nil, apperrors.ErrNotFound).Once()

	snapshot, err := suite.service.GetExpirationAlerts(ctx)

	suite.Require().NoError(err)
	suite.NotNil(snapshot.Alerts)
	suite.Empty(snapshot.Alerts)
	suite.True(snapshot.LastChecked.IsZero())
}

package services

import (
	"context"
	"fmt"
	"strings"

	portsrepo "github.com/SscSPs/staff_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/staff_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/staff_ledger_app/internal/dto"
)

// AuditService reads the audit trail. Records are written by the mutations themselves.
type AuditService struct {
	BaseService
	auditRepo portsrepo.AuditRepositoryFacade
}

func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade, options ...Option) *AuditService {
	return &AuditService{
		BaseService: newBaseService(options),
		auditRepo:   auditRepo,
	}
}

var _ portssvc.AuditService = (*AuditService)(nil)

func (s *AuditService) ListAuditLogs(ctx context.Context, params dto.ListAuditLogsParams) (*dto.ListAuditLogsResponse, error) {
	var employeeID *string
	if params.EmployeeID != nil && strings.TrimSpace(*params.EmployeeID) != "" {
		id := strings.TrimSpace(*params.EmployeeID)
		employeeID = &id
	}

	records, nextToken, err := s.auditRepo.ListAuditLogs(ctx, employeeID, normalizeLimit(params.Limit), params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit logs")
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return &dto.ListAuditLogsResponse{Records: records, NextToken: nextToken}, nil
}

package services

import (
	"context"
	"fmt"

	portsrepo "github.com/SscSPs/staff_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/staff_ledger_app/internal/core/ports/services"
)

type healthService struct {
	checker portsrepo.HealthChecker
}

// NewHealthService reports the storage backend's liveness. A nil checker is always healthy.
func NewHealthService(checker portsrepo.HealthChecker) portssvc.HealthSvc {
	return &healthService{checker: checker}
}

func (s *healthService) Check(ctx context.Context) error {
	if s.checker == nil {
		return nil
	}
	if err := s.checker.Ping(ctx); err != nil {
		return fmt.Errorf("storage unreachable: %w", err)
	}
	return nil
}

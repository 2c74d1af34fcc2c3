package repositories

import "context"

// HealthChecker is implemented by storage backends that can report liveness.
type HealthChecker interface {
	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}

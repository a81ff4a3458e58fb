package employee

import (
	"context"
)

// Repository defines the employee directory queries used by the
// reconciliation pipeline.
type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
	// MapByBiometricID returns active employees keyed by their biometric
	// identifier, for matching raw device readings.
	MapByBiometricID(ctx context.Context) (map[string]Employee, error)
	ListAdmins(ctx context.Context) ([]Employee, error)
}

package report

import (
	"context"
)

// Service is the report generator.
type Service interface {
	// Generate resolves the employee set, computes statements in parallel
	// and persists statements plus the report atomically. Re-invocation
	// with unchanged underlying data returns the existing report.
	Generate(ctx context.Context, req GenerateRequest) (Report, error)

	// GenerateForUser is the single-employee, single-month convenience
	// used by the admin UI.
	GenerateForUser(ctx context.Context, employeeID, month string) (Report, error)

	List(ctx context.Context) ([]Report, error)
	GetByID(ctx context.Context, id string) (Report, error)
}

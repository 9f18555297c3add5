package compensation

import (
	"context"
	"time"
)

// Service is the compensation policy resolver.
type Service interface {
	// Resolve returns the plan effective for the employee at date, or
	// ErrNoPlanEffective when the date precedes every plan.
	Resolve(ctx context.Context, employeeID string, date time.Time) (Plan, error)

	// AddPlan appends a plan to the employee's history.
	AddPlan(ctx context.Context, req CreatePlanRequest) (Plan, error)

	History(ctx context.Context, employeeID string) ([]Plan, error)
}

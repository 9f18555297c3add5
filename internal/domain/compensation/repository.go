package compensation

import (
	"context"
)

// PlanRepository persists the append-only compensation plan history.
type PlanRepository interface {
	Create(ctx context.Context, plan Plan) (Plan, error)

	// HistoryForEmployee returns all plans for the employee ordered by
	// EffectiveFrom ascending.
	HistoryForEmployee(ctx context.Context, employeeID string) ([]Plan, error)
}

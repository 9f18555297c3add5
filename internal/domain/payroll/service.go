package payroll

import (
	"context"
)

// Service is the payroll aggregator.
type Service interface {
	// ComputeStatement reconciles attendance, leave and compensation into
	// a statement for the month. Pure given its fetched inputs; nothing is
	// persisted.
	ComputeStatement(ctx context.Context, employeeID string, month Month) (Statement, error)

	// GenerateStatement computes and persists a statement. Unchanged
	// inputs return the already-persisted version instead of a duplicate.
	GenerateStatement(ctx context.Context, employeeID string, month Month) (Statement, error)

	// PersistComputed stores a computed statement unless an identical
	// version already exists. It honors a surrounding transaction via ctx,
	// which is how the report generator writes a whole batch atomically.
	PersistComputed(ctx context.Context, st Statement) (Statement, error)

	StatementsForEmployee(ctx context.Context, employeeID string) ([]Statement, error)
}

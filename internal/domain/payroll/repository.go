package payroll

import (
	"context"
)

// StatementRepository persists versioned salary statements. Statements are
// immutable: regeneration appends a new version, never updates in place.
type StatementRepository interface {
	// Create inserts a statement. Version assignment is the caller's job
	// (max existing version for the employee/month plus one).
	Create(ctx context.Context, st Statement) (Statement, error)

	// GetByInputsHash returns the statement for (employee, month) whose
	// inputs hash matches, or ErrStatementNotFound.
	GetByInputsHash(ctx context.Context, employeeID string, month Month, inputsHash string) (Statement, error)

	// LatestVersion returns the highest version persisted for the
	// employee/month, zero when none exists.
	LatestVersion(ctx context.Context, employeeID string, month Month) (int, error)

	GetByID(ctx context.Context, id string) (Statement, error)
	ListForEmployee(ctx context.Context, employeeID string) ([]Statement, error)
}

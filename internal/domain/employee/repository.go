package employee

import (
	"context"
)

// Repository is the read-only directory contract.
type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	ListByIDs(ctx context.Context, ids []string) ([]Employee, error)
	ListByDepartment(ctx context.Context, department string) ([]Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
}

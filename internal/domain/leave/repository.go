package leave

import (
	"context"
	"time"
)

// RequestRepository persists leave requests. Rows are only ever created or
// moved through the status state machine, never deleted.
type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	ListForEmployee(ctx context.Context, employeeID string) ([]Request, error)

	// HasOverlap reports whether any pending or approved request for the
	// employee intersects [start, end). excludeID may be empty.
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (bool, error)

	// UpdateStatus transitions id from one status to another. The `from`
	// status is a precondition evaluated atomically in the UPDATE; when it
	// no longer holds, ErrAlreadyProcessed is returned. This is what
	// serializes concurrent approvals of the same request.
	UpdateStatus(ctx context.Context, id string, from, to Status) (Request, error)

	// ApprovedInRange returns approved requests intersecting [from, to).
	ApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]Request, error)
}

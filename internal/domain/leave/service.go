package leave

import (
	"context"
	"time"
)

// Service is the leave registry: request workflow plus the per-day queries
// the payroll aggregator needs.
type Service interface {
	Submit(ctx context.Context, employeeID string, req SubmitRequest) (Request, error)
	Approve(ctx context.Context, requestID string) (Request, error)
	Reject(ctx context.Context, requestID string) (Request, error)

	// Cancel is only valid for the owning employee, only on approved
	// requests, and only while the cancellation window is open.
	Cancel(ctx context.Context, employeeID, requestID string, now time.Time) (Request, error)

	ListForEmployee(ctx context.Context, employeeID string) ([]Request, error)

	// ApprovedDaysForRange returns the calendar days in [from, to) covered
	// by approved leave, keyed by UTC midnight.
	ApprovedDaysForRange(ctx context.Context, employeeID string, from, to time.Time) (map[time.Time]Day, error)
}

package attendance

import (
	"context"
	"time"
)

// Service is the attendance ledger: append clock events, derive sessions.
type Service interface {
	ClockIn(ctx context.Context, employeeID string, ts time.Time) (Event, error)
	ClockOut(ctx context.Context, employeeID string, ts time.Time) (Event, error)

	// SessionsForRange derives the per-day sessions whose day falls in
	// [from, to), together with any anomalies found in the stream.
	SessionsForRange(ctx context.Context, employeeID string, from, to time.Time) ([]Session, []Anomaly, error)

	// EventsForRange returns the raw events, chronological.
	EventsForRange(ctx context.Context, employeeID string, from, to time.Time) ([]Event, error)
}

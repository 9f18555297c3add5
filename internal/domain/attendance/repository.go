package attendance

import (
	"context"
	"time"
)

// EventRepository persists the append-only clock event stream.
type EventRepository interface {
	// AppendClockIn inserts a clock-in only if the employee has no open
	// session. The check and the insert are a single atomic statement;
	// ErrOpenSessionExists is returned when the precondition fails.
	AppendClockIn(ctx context.Context, employeeID string, ts time.Time) (Event, error)

	// AppendClockOut inserts a clock-out only if the employee's latest
	// event is a clock-in at or before ts. ErrNoOpenSession is returned
	// when no session is open.
	AppendClockOut(ctx context.Context, employeeID string, ts time.Time) (Event, error)

	// ListForRange returns events with from <= ts < to, chronological.
	ListForRange(ctx context.Context, employeeID string, from, to time.Time) ([]Event, error)
}

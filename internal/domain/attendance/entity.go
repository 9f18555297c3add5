package attendance

import (
	"time"
)

// EventKind enum
type EventKind string

const (
	EventClockIn  EventKind = "clock_in"
	EventClockOut EventKind = "clock_out"
)

// Event is a single clock event. The events table is append-only: events are
// never updated or deleted, all derived state is recomputed from the stream.
type Event struct {
	ID         string
	EmployeeID string
	Timestamp  time.Time
	Kind       EventKind
	CreatedAt  time.Time
}

// Session is a contiguous clock-in/clock-out pair attributed to one calendar
// day. Sessions are derived from the event stream, never stored.
type Session struct {
	EmployeeID string
	Start      time.Time
	End        time.Time
	// Open marks a trailing unmatched clock-in. Open sessions carry no
	// worked time until they are closed.
	Open bool
}

func (s Session) Duration() time.Duration {
	if s.Open {
		return 0
	}
	return s.End.Sub(s.Start)
}

// Day returns the UTC midnight of the day the session belongs to.
func (s Session) Day() time.Time {
	return DayOf(s.Start)
}

// AnomalyCode enum
type AnomalyCode string

const (
	AnomalyOpenSession    AnomalyCode = "open_session"
	AnomalyOrphanClockOut AnomalyCode = "orphan_clock_out"
	AnomalyInvalidSession AnomalyCode = "invalid_session"
)

// Anomaly is a non-fatal irregularity found while deriving sessions. It is
// reported to callers (and ends up as a statement warning) but never aborts
// a computation.
type Anomaly struct {
	Code    AnomalyCode `json:"code"`
	At      time.Time   `json:"at"`
	Message string      `json:"message"`
}

// DayOf truncates a timestamp to UTC midnight.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

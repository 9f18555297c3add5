package leave

import (
	"time"
)

// Type enum. Whether a type is paid is engine policy, not caller input.
type Type string

const (
	TypeAnnual   Type = "annual"
	TypeSick     Type = "sick"
	TypePersonal Type = "personal"
	TypeUnpaid   Type = "unpaid"
)

// Paid reports whether days of this leave type are compensated.
func (t Type) Paid() bool {
	switch t {
	case TypeAnnual, TypeSick:
		return true
	default:
		return false
	}
}

// Valid reports whether t is a known leave type.
func (t Type) Valid() bool {
	switch t {
	case TypeAnnual, TypeSick, TypePersonal, TypeUnpaid:
		return true
	default:
		return false
	}
}

// Status enum
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Request is a leave request. Requests are never deleted; only the status
// moves through the state machine:
//
//	pending -> approved | rejected
//	approved -> cancelled (before the start date plus the configured cutoff)
//
// The interval is half-open: [StartDate, EndDate) in whole UTC days.
type Request struct {
	ID         string
	EmployeeID string
	Type       Type
	StartDate  time.Time
	EndDate    time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Overlaps reports whether [StartDate, EndDate) intersects [start, end).
func (r Request) Overlaps(start, end time.Time) bool {
	return r.StartDate.Before(end) && start.Before(r.EndDate)
}

// Days enumerates the UTC days covered by the request.
func (r Request) Days() []time.Time {
	var days []time.Time
	for d := r.StartDate; d.Before(r.EndDate); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Day is one calendar day covered by an approved leave, tagged with the
// paid/unpaid policy of its type.
type Day struct {
	Date time.Time
	Type Type
	Paid bool
}

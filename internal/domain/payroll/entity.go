package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coverage enum: the per-day classification of an employee. Exactly one
// applies per (employee, day); approved leave is authoritative over
// attendance when both exist.
type Coverage string

const (
	CoverageWorked  Coverage = "worked"
	CoverageOnLeave Coverage = "on_leave"
	CoverageAbsent  Coverage = "absent"
)

// WarningCode enum
type WarningCode string

const (
	WarningOpenSession            WarningCode = "open_session"
	WarningOrphanClockOut         WarningCode = "orphan_clock_out"
	WarningInvalidSession         WarningCode = "invalid_session"
	WarningLeaveAttendanceOverlap WarningCode = "leave_attendance_overlap"
	WarningNoPlanEffective        WarningCode = "no_plan_effective"
	WarningStatementFailed        WarningCode = "statement_failed"
)

// Warning is a computation anomaly attached to a statement or report. It
// never aborts a computation.
type Warning struct {
	Code    WarningCode `json:"code"`
	Date    string      `json:"date,omitempty"`
	Message string      `json:"message"`
}

// Statement is the immutable monthly payroll result for one employee.
// Regeneration with changed inputs produces a new row with a bumped version;
// unchanged inputs hash to an existing row which is returned as-is.
type Statement struct {
	ID            string
	EmployeeID    string
	Month         Month
	GrossPay      decimal.Decimal
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	PaidLeaveDays int
	UnpaidDays    int
	Warnings      []Warning
	InputsHash    string
	Version       int
	CreatedAt     time.Time
}

// Month is a calendar month in UTC.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses "2006-01".
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, ErrInvalidMonth
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) String() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// Start returns the first day of the month at UTC midnight.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first day of the following month (exclusive bound).
func (m Month) End() time.Time {
	return m.Start().AddDate(0, 1, 0)
}

// DaysIn returns the number of calendar days in the month.
func (m Month) DaysIn() int {
	return int(m.End().Sub(m.Start()).Hours() / 24)
}

// Days enumerates every day of the month at UTC midnight.
func (m Month) Days() []time.Time {
	days := make([]time.Time, 0, m.DaysIn())
	for d := m.Start(); d.Before(m.End()); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Next returns the following month.
func (m Month) Next() Month {
	t := m.End()
	return Month{Year: t.Year(), Month: t.Month()}
}

// After reports whether m is after other.
func (m Month) After(other Month) bool {
	return m.Start().After(other.Start())
}

package report

import (
	"time"

	"github.com/bittarwork/altrohr-payroll/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Category enum
type Category string

const (
	// CategoryUser is a single-employee report.
	CategoryUser Category = "user"
	// CategoryPayroll is a batch payroll report over a filtered employee set.
	CategoryPayroll Category = "payroll"
)

// Filter selects the employee set a report covers. Exactly one selector is
// used: explicit ids, a department, or everyone.
type Filter struct {
	EmployeeIDs []string `json:"employeeIds,omitempty"`
	Department  string   `json:"department,omitempty"`
	All         bool     `json:"all,omitempty"`
}

// Params are the persisted generation parameters. From/To are months,
// inclusive on both ends.
type Params struct {
	Filter Filter `json:"filter"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// Summary aggregates the statements included in a report.
type Summary struct {
	EmployeeCount      int             `json:"employeeCount"`
	StatementCount     int             `json:"statementCount"`
	TotalGross         decimal.Decimal `json:"totalGross"`
	AverageGross       decimal.Decimal `json:"averageGross"`
	TotalRegularHours  decimal.Decimal `json:"totalRegularHours"`
	TotalOvertimeHours decimal.Decimal `json:"totalOvertimeHours"`
	PaidLeaveDays      int             `json:"paidLeaveDays"`
	UnpaidDays         int             `json:"unpaidDays"`
}

// Report is a persisted batch of statements plus summary statistics. Reports
// are versioned by content hash and never mutated: regenerating with
// unchanged inputs returns the existing row.
type Report struct {
	ID            string
	Category      Category
	Params        Params
	GeneratedAt   time.Time
	ContentHash   string
	StatementRefs []string
	Summary       Summary
	Warnings      []payroll.Warning
}

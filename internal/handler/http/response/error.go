package response

import (
	"errors"
	"net/http"

	"github.com/bittarwork/altrohr-payroll/internal/domain/attendance"
	"github.com/bittarwork/altrohr-payroll/internal/domain/compensation"
	"github.com/bittarwork/altrohr-payroll/internal/domain/employee"
	"github.com/bittarwork/altrohr-payroll/internal/domain/leave"
	"github.com/bittarwork/altrohr-payroll/internal/domain/payroll"
	"github.com/bittarwork/altrohr-payroll/internal/domain/report"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrOpenSessionExists):
		Conflict(w, "An open session already exists, clock out first")
	case errors.Is(err, attendance.ErrNoOpenSession):
		Conflict(w, "No open session to clock out of")
	case errors.Is(err, attendance.ErrInvalidTimestamp):
		ValidationError(w, "Invalid clock timestamp")
	case errors.Is(err, attendance.ErrInvalidRange):
		ValidationError(w, "Invalid date range")

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "Leave request overlaps an existing request")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrNotApproved):
		Conflict(w, "Only approved leave requests can be cancelled")
	case errors.Is(err, leave.ErrCancelWindowClosed):
		Conflict(w, "Cancellation window for this leave has closed")
	case errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, "Leave request belongs to another employee")
	case errors.Is(err, leave.ErrInvalidType):
		ValidationError(w, "Unknown leave type")
	case errors.Is(err, leave.ErrInvalidDates):
		ValidationError(w, "Leave end date must be after start date")

	// Compensation domain errors
	case errors.Is(err, compensation.ErrNoPlanEffective):
		NotFound(w, "No compensation plan effective at this date")
	case errors.Is(err, compensation.ErrInvalidPlan):
		ValidationError(w, "Invalid compensation plan")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrStatementNotFound):
		NotFound(w, "Salary statement not found")
	case errors.Is(err, payroll.ErrNoPlanForPeriod):
		NotFound(w, "No compensation plan resolvable for this period")
	case errors.Is(err, payroll.ErrInvalidMonth):
		ValidationError(w, "Invalid month, expected YYYY-MM")
	case errors.Is(err, payroll.ErrUnknownEmployee):
		NotFound(w, "Employee not found")

	// Report domain errors
	case errors.Is(err, report.ErrReportNotFound):
		NotFound(w, "Report not found")
	case errors.Is(err, report.ErrInvalidCategory):
		ValidationError(w, "Unknown report category")
	case errors.Is(err, report.ErrInvalidFilter):
		ValidationError(w, "Report filter must select employees, a department, or all")
	case errors.Is(err, report.ErrInvalidRange):
		ValidationError(w, "Report range is invalid")
	case errors.Is(err, report.ErrEmptyBatch):
		ValidationError(w, "Report filter matched no employees")

	// Employee directory errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

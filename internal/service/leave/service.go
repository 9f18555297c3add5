package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bittarwork/altrohr-payroll/internal/domain/attendance"
	"github.com/bittarwork/altrohr-payroll/internal/domain/leave"
	"github.com/bittarwork/altrohr-payroll/internal/pkg/database"
	"github.com/bittarwork/altrohr-payroll/internal/repository/postgresql"
)

type ServiceImpl struct {
	db          *database.DB
	requestRepo leave.RequestRepository
	// cancelCutoff extends the window in which an approved leave may still
	// be cancelled past its start date.
	cancelCutoff time.Duration
}

func NewLeaveService(db *database.DB, requestRepo leave.RequestRepository, cancelCutoffDays int) leave.Service {
	return &ServiceImpl{
		db:           db,
		requestRepo:  requestRepo,
		cancelCutoff: time.Duration(cancelCutoffDays) * 24 * time.Hour,
	}
}

func (s *ServiceImpl) Submit(ctx context.Context, employeeID string, req leave.SubmitRequest) (leave.Request, error) {
	leaveType, start, end, err := req.Parse()
	if err != nil {
		return leave.Request{}, err
	}

	hasOverlap, err := s.requestRepo.HasOverlap(ctx, employeeID, start, end, "")
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to check overlapping leave requests: %w", err)
	}
	if hasOverlap {
		return leave.Request{}, leave.ErrOverlappingLeave
	}

	created, err := s.requestRepo.Create(ctx, leave.Request{
		EmployeeID: employeeID,
		Type:       leaveType,
		StartDate:  start,
		EndDate:    end,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	slog.Info("leave request submitted",
		"employee_id", employeeID, "leave_type", leaveType,
		"start", start.Format("2006-01-02"), "end", end.Format("2006-01-02"))
	return created, nil
}

// Approve transitions pending -> approved. The status precondition and the
// in-transaction overlap re-check together guarantee approved intervals for
// one employee never overlap, even under concurrent approvals.
func (s *ServiceImpl) Approve(ctx context.Context, requestID string) (leave.Request, error) {
	var approved leave.Request
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		req, err := s.requestRepo.UpdateStatus(txCtx, requestID, leave.StatusPending, leave.StatusApproved)
		if err != nil {
			return err
		}

		hasOverlap, err := s.requestRepo.HasOverlap(txCtx, req.EmployeeID, req.StartDate, req.EndDate, req.ID)
		if err != nil {
			return fmt.Errorf("failed to re-check overlap on approval: %w", err)
		}
		if hasOverlap {
			return leave.ErrOverlappingLeave
		}

		approved = req
		return nil
	})
	if err != nil {
		return leave.Request{}, err
	}

	slog.Info("leave request approved", "request_id", approved.ID, "employee_id", approved.EmployeeID)
	return approved, nil
}

func (s *ServiceImpl) Reject(ctx context.Context, requestID string) (leave.Request, error) {
	req, err := s.requestRepo.UpdateStatus(ctx, requestID, leave.StatusPending, leave.StatusRejected)
	if err != nil {
		return leave.Request{}, err
	}

	slog.Info("leave request rejected", "request_id", req.ID, "employee_id", req.EmployeeID)
	return req, nil
}

func (s *ServiceImpl) Cancel(ctx context.Context, employeeID, requestID string, now time.Time) (leave.Request, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.Request{}, err
	}
	if req.EmployeeID != employeeID {
		return leave.Request{}, leave.ErrNotRequestOwner
	}
	if req.Status != leave.StatusApproved {
		return leave.Request{}, leave.ErrNotApproved
	}
	if !now.Before(req.StartDate.Add(s.cancelCutoff)) {
		return leave.Request{}, leave.ErrCancelWindowClosed
	}

	cancelled, err := s.requestRepo.UpdateStatus(ctx, requestID, leave.StatusApproved, leave.StatusCancelled)
	if err != nil {
		return leave.Request{}, err
	}

	slog.Info("leave request cancelled", "request_id", cancelled.ID, "employee_id", employeeID)
	return cancelled, nil
}

func (s *ServiceImpl) ListForEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	return s.requestRepo.ListForEmployee(ctx, employeeID)
}

func (s *ServiceImpl) ApprovedDaysForRange(ctx context.Context, employeeID string, from, to time.Time) (map[time.Time]leave.Day, error) {
	requests, err := s.requestRepo.ApprovedInRange(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}

	days := make(map[time.Time]leave.Day)
	for _, req := range requests {
		for _, d := range req.Days() {
			day := attendance.DayOf(d)
			if day.Before(from) || !day.Before(to) {
				continue
			}
			days[day] = leave.Day{Date: day, Type: req.Type, Paid: req.Type.Paid()}
		}
	}
	return days, nil
}

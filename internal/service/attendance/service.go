package attendance

import (
	"context"
	"log/slog"
	"time"

	"github.com/bittarwork/altrohr-payroll/internal/domain/attendance"
)

type ServiceImpl struct {
	eventRepo attendance.EventRepository
}

func NewAttendanceService(eventRepo attendance.EventRepository) attendance.Service {
	return &ServiceImpl{eventRepo: eventRepo}
}

func (s *ServiceImpl) ClockIn(ctx context.Context, employeeID string, ts time.Time) (attendance.Event, error) {
	if ts.IsZero() {
		return attendance.Event{}, attendance.ErrInvalidTimestamp
	}

	ev, err := s.eventRepo.AppendClockIn(ctx, employeeID, ts)
	if err != nil {
		return attendance.Event{}, err
	}

	slog.Info("clock-in recorded", "employee_id", employeeID, "ts", ev.Timestamp)
	return ev, nil
}

func (s *ServiceImpl) ClockOut(ctx context.Context, employeeID string, ts time.Time) (attendance.Event, error) {
	if ts.IsZero() {
		return attendance.Event{}, attendance.ErrInvalidTimestamp
	}

	ev, err := s.eventRepo.AppendClockOut(ctx, employeeID, ts)
	if err != nil {
		return attendance.Event{}, err
	}

	slog.Info("clock-out recorded", "employee_id", employeeID, "ts", ev.Timestamp)
	return ev, nil
}

func (s *ServiceImpl) SessionsForRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Session, []attendance.Anomaly, error) {
	if !to.After(from) {
		return nil, nil, attendance.ErrInvalidRange
	}

	// A session that starts the day before can spill into the range, so
	// pairing needs one day of lookback before clipping.
	lookback := from.AddDate(0, 0, -1)
	events, err := s.eventRepo.ListForRange(ctx, employeeID, lookback, to)
	if err != nil {
		return nil, nil, err
	}

	sessions, anomalies := attendance.BuildSessions(events)
	return attendance.ClipSessions(sessions, from, to), anomalies, nil
}

func (s *ServiceImpl) EventsForRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Event, error) {
	if !to.After(from) {
		return nil, attendance.ErrInvalidRange
	}
	return s.eventRepo.ListForRange(ctx, employeeID, from, to)
}

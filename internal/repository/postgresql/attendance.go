package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/bittarwork/altrohr-payroll/internal/domain/attendance"
	"github.com/bittarwork/altrohr-payroll/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceEventRepository struct {
	db *database.DB
}

func NewAttendanceEventRepository(db *database.DB) attendance.EventRepository {
	return &attendanceEventRepository{db: db}
}

// AppendClockIn inserts the event only when the employee's latest event is
// not an unmatched clock-in. The precondition and the insert run as one
// statement, which is the check-and-set the ledger relies on: two racing
// clock-ins cannot both observe "no open session".
func (r *attendanceEventRepository) AppendClockIn(ctx context.Context, employeeID string, ts time.Time) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (id, employee_id, ts, kind)
		SELECT $1, $2, $3, 'clock_in'
		WHERE NOT EXISTS (
			SELECT 1 FROM (
				SELECT kind FROM attendance_events
				WHERE employee_id = $2
				ORDER BY ts DESC, created_at DESC
				LIMIT 1
			) last WHERE last.kind = 'clock_in'
		)
		RETURNING id, employee_id, ts, kind, created_at
	`

	var ev attendance.Event
	err := q.QueryRow(ctx, query, uuid.NewString(), employeeID, ts.UTC()).Scan(
		&ev.ID, &ev.EmployeeID, &ev.Timestamp, &ev.Kind, &ev.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Event{}, attendance.ErrOpenSessionExists
		}
		return attendance.Event{}, fmt.Errorf("failed to append clock-in: %w", err)
	}

	return ev, nil
}

func (r *attendanceEventRepository) AppendClockOut(ctx context.Context, employeeID string, ts time.Time) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (id, employee_id, ts, kind)
		SELECT $1, $2, $3, 'clock_out'
		WHERE EXISTS (
			SELECT 1 FROM (
				SELECT kind, ts FROM attendance_events
				WHERE employee_id = $2
				ORDER BY ts DESC, created_at DESC
				LIMIT 1
			) last WHERE last.kind = 'clock_in' AND last.ts < $3
		)
		RETURNING id, employee_id, ts, kind, created_at
	`

	var ev attendance.Event
	err := q.QueryRow(ctx, query, uuid.NewString(), employeeID, ts.UTC()).Scan(
		&ev.ID, &ev.EmployeeID, &ev.Timestamp, &ev.Kind, &ev.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Event{}, attendance.ErrNoOpenSession
		}
		return attendance.Event{}, fmt.Errorf("failed to append clock-out: %w", err)
	}

	return ev, nil
}

func (r *attendanceEventRepository) ListForRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, ts, kind, created_at
		FROM attendance_events
		WHERE employee_id = $1 AND ts >= $2 AND ts < $3
		ORDER BY ts ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		var ev attendance.Event
		if err := rows.Scan(&ev.ID, &ev.EmployeeID, &ev.Timestamp, &ev.Kind, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance events: %w", err)
	}

	return events, nil
}

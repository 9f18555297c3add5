package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bittarwork/altrohr-payroll/internal/domain/attendance"
)

// fakeEventRepo keeps events in memory and enforces the same latest-event
// preconditions the conditional inserts enforce in SQL.
type fakeEventRepo struct {
	events []attendance.Event
}

func (f *fakeEventRepo) last(employeeID string) (attendance.Event, bool) {
	for i := len(f.events) - 1; i >= 0; i-- {
		if f.events[i].EmployeeID == employeeID {
			return f.events[i], true
		}
	}
	return attendance.Event{}, false
}

func (f *fakeEventRepo) append(employeeID string, ts time.Time, kind attendance.EventKind) attendance.Event {
	ev := attendance.Event{
		ID:         fmt.Sprintf("ev-%d", len(f.events)+1),
		EmployeeID: employeeID,
		Timestamp:  ts,
		Kind:       kind,
		CreatedAt:  time.Now().UTC(),
	}
	f.events = append(f.events, ev)
	return ev
}

func (f *fakeEventRepo) AppendClockIn(ctx context.Context, employeeID string, ts time.Time) (attendance.Event, error) {
	if last, ok := f.last(employeeID); ok && last.Kind == attendance.EventClockIn {
		return attendance.Event{}, attendance.ErrOpenSessionExists
	}
	return f.append(employeeID, ts, attendance.EventClockIn), nil
}

func (f *fakeEventRepo) AppendClockOut(ctx context.Context, employeeID string, ts time.Time) (attendance.Event, error) {
	last, ok := f.last(employeeID)
	if !ok || last.Kind != attendance.EventClockIn || !last.Timestamp.Before(ts) {
		return attendance.Event{}, attendance.ErrNoOpenSession
	}
	return f.append(employeeID, ts, attendance.EventClockOut), nil
}

func (f *fakeEventRepo) ListForRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, ev := range f.events {
		if ev.EmployeeID != employeeID {
			continue
		}
		if ev.Timestamp.Before(from) || !ev.Timestamp.Before(to) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

func at(day, hour int) time.Time {
	return time.Date(2025, time.June, day, hour, 0, 0, 0, time.UTC)
}

func TestClockIn_RejectsSecondWhileSessionOpen(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := NewAttendanceService(repo)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, "emp-1", at(2, 9))
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, "emp-1", at(2, 10))
	assert.ErrorIs(t, err, attendance.ErrOpenSessionExists)

	// Only the first clock-in made it into the stream.
	events, err := repo.ListForRange(ctx, "emp-1", at(1, 0), at(3, 0))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, attendance.EventClockIn, events[0].Kind)
	assert.Equal(t, at(2, 9), events[0].Timestamp)
}

func TestClockIn_AllowedAgainAfterClockOut(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := NewAttendanceService(repo)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, "emp-1", at(2, 9))
	require.NoError(t, err)
	_, err = svc.ClockOut(ctx, "emp-1", at(2, 17))
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, "emp-1", at(3, 9))
	assert.NoError(t, err)
}

func TestClockIn_IndependentPerEmployee(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := NewAttendanceService(repo)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, "emp-1", at(2, 9))
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, "emp-2", at(2, 9))
	assert.NoError(t, err)
}

func TestClockOut_RequiresOpenSession(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := NewAttendanceService(repo)
	ctx := context.Background()

	_, err := svc.ClockOut(ctx, "emp-1", at(2, 17))
	assert.ErrorIs(t, err, attendance.ErrNoOpenSession)
}

func TestClockOut_RejectsTimestampNotAfterClockIn(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := NewAttendanceService(repo)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, "emp-1", at(2, 9))
	require.NoError(t, err)

	_, err = svc.ClockOut(ctx, "emp-1", at(2, 9))
	assert.ErrorIs(t, err, attendance.ErrNoOpenSession)

	_, err = svc.ClockOut(ctx, "emp-1", at(2, 8))
	assert.ErrorIs(t, err, attendance.ErrNoOpenSession)
}

func TestClock_RejectsZeroTimestamp(t *testing.T) {
	svc := NewAttendanceService(&fakeEventRepo{})
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, "emp-1", time.Time{})
	assert.ErrorIs(t, err, attendance.ErrInvalidTimestamp)
	_, err = svc.ClockOut(ctx, "emp-1", time.Time{})
	assert.ErrorIs(t, err, attendance.ErrInvalidTimestamp)
}

func TestSessionsForRange_PairsAcrossRangeStart(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := NewAttendanceService(repo)
	ctx := context.Background()

	// Overnight shift: in at 23:00 on the 1st, out at 02:00 on the 2nd.
	_, err := svc.ClockIn(ctx, "emp-1", at(1, 23))
	require.NoError(t, err)
	_, err = svc.ClockOut(ctx, "emp-1", at(2, 2))
	require.NoError(t, err)

	// The range starts on the 2nd; the lookback still pairs the clock-in
	// from the 1st and the midnight split leaves 2h inside the range.
	sessions, anomalies, err := svc.SessionsForRange(ctx, "emp-1", at(2, 0), at(3, 0))
	require.NoError(t, err)
	assert.Empty(t, anomalies)
	require.Len(t, sessions, 1)
	assert.Equal(t, at(2, 0), sessions[0].Start)
	assert.Equal(t, at(2, 2), sessions[0].End)
	assert.Equal(t, 2*time.Hour, sessions[0].Duration())
}

func TestSessionsForRange_InvalidRange(t *testing.T) {
	svc := NewAttendanceService(&fakeEventRepo{})

	_, _, err := svc.SessionsForRange(context.Background(), "emp-1", at(3, 0), at(2, 0))
	assert.ErrorIs(t, err, attendance.ErrInvalidRange)
}

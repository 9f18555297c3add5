package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bittarwork/altrohr-payroll/internal/domain/leave"
)

// fakeRequestRepo is an in-memory leave.RequestRepository with the same
// precondition semantics as the SQL implementation.
type fakeRequestRepo struct {
	requests map[string]leave.Request
	nextID   int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]leave.Request)}
}

func (f *fakeRequestRepo) Create(_ context.Context, req leave.Request) (leave.Request, error) {
	f.nextID++
	req.ID = fmt.Sprintf("req-%d", f.nextID)
	req.CreatedAt = time.Now().UTC()
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (leave.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	return req, nil
}

func (f *fakeRequestRepo) ListForEmployee(_ context.Context, employeeID string) ([]leave.Request, error) {
	var out []leave.Request
	for _, req := range f.requests {
		if req.EmployeeID == employeeID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) HasOverlap(_ context.Context, employeeID string, start, end time.Time, excludeID string) (bool, error) {
	for _, req := range f.requests {
		if req.EmployeeID != employeeID || req.ID == excludeID {
			continue
		}
		if req.Status != leave.StatusPending && req.Status != leave.StatusApproved {
			continue
		}
		if req.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, id string, from, to leave.Status) (leave.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	if req.Status != from {
		return leave.Request{}, leave.ErrAlreadyProcessed
	}
	req.Status = to
	req.UpdatedAt = time.Now().UTC()
	f.requests[id] = req
	return req, nil
}

func (f *fakeRequestRepo) ApprovedInRange(_ context.Context, employeeID string, from, to time.Time) ([]leave.Request, error) {
	var out []leave.Request
	for _, req := range f.requests {
		if req.EmployeeID == employeeID && req.Status == leave.StatusApproved && req.Overlaps(from, to) {
			out = append(out, req)
		}
	}
	return out, nil
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func submitReq(leaveType, start, end string) leave.SubmitRequest {
	return leave.SubmitRequest{LeaveType: leaveType, StartDate: start, EndDate: end}
}

func TestLeaveService_Submit(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRequestRepo()
	svc := NewLeaveService(nil, repo, 0)

	created, err := svc.Submit(ctx, "emp-1", submitReq("annual", "2025-06-10", "2025-06-13"))
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, created.Status)
	assert.Equal(t, leave.TypeAnnual, created.Type)
	assert.NotEmpty(t, created.ID)
}

func TestLeaveService_Submit_RejectsOverlap(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRequestRepo()
	svc := NewLeaveService(nil, repo, 0)

	_, err := svc.Submit(ctx, "emp-1", submitReq("annual", "2025-06-10", "2025-06-15"))
	require.NoError(t, err)

	_, err = svc.Submit(ctx, "emp-1", submitReq("sick", "2025-06-14", "2025-06-16"))
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)

	// The half-open interval makes a request starting at the end date fine.
	_, err = svc.Submit(ctx, "emp-1", submitReq("sick", "2025-06-15", "2025-06-16"))
	assert.NoError(t, err)

	// Another employee is unaffected.
	_, err = svc.Submit(ctx, "emp-2", submitReq("annual", "2025-06-10", "2025-06-15"))
	assert.NoError(t, err)
}

func TestLeaveService_Reject_OnlyOnce(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRequestRepo()
	svc := NewLeaveService(nil, repo, 0)

	created, err := svc.Submit(ctx, "emp-1", submitReq("personal", "2025-06-10", "2025-06-12"))
	require.NoError(t, err)

	rejected, err := svc.Reject(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, rejected.Status)

	_, err = svc.Reject(ctx, created.ID)
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestLeaveService_Cancel(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, cutoffDays int) (leave.Service, leave.Request) {
		repo := newFakeRequestRepo()
		svc := NewLeaveService(nil, repo, cutoffDays)
		created, err := svc.Submit(ctx, "emp-1", submitReq("annual", "2025-06-10", "2025-06-13"))
		require.NoError(t, err)
		_, err = repo.UpdateStatus(ctx, created.ID, leave.StatusPending, leave.StatusApproved)
		require.NoError(t, err)
		created.Status = leave.StatusApproved
		return svc, created
	}

	t.Run("before start date", func(t *testing.T) {
		svc, req := setup(t, 0)
		cancelled, err := svc.Cancel(ctx, "emp-1", req.ID, day("2025-06-09"))
		require.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, cancelled.Status)
	})

	t.Run("window closed", func(t *testing.T) {
		svc, req := setup(t, 0)
		_, err := svc.Cancel(ctx, "emp-1", req.ID, day("2025-06-10"))
		assert.ErrorIs(t, err, leave.ErrCancelWindowClosed)
	})

	t.Run("cutoff extends the window", func(t *testing.T) {
		svc, req := setup(t, 2)
		cancelled, err := svc.Cancel(ctx, "emp-1", req.ID, day("2025-06-11"))
		require.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, cancelled.Status)

		svc, req = setup(t, 2)
		_, err = svc.Cancel(ctx, "emp-1", req.ID, day("2025-06-12"))
		assert.ErrorIs(t, err, leave.ErrCancelWindowClosed)
	})

	t.Run("not the owner", func(t *testing.T) {
		svc, req := setup(t, 0)
		_, err := svc.Cancel(ctx, "emp-2", req.ID, day("2025-06-09"))
		assert.ErrorIs(t, err, leave.ErrNotRequestOwner)
	})

	t.Run("only approved requests", func(t *testing.T) {
		repo := newFakeRequestRepo()
		svc := NewLeaveService(nil, repo, 0)
		created, err := svc.Submit(ctx, "emp-1", submitReq("annual", "2025-06-10", "2025-06-13"))
		require.NoError(t, err)

		_, err = svc.Cancel(ctx, "emp-1", created.ID, day("2025-06-09"))
		assert.ErrorIs(t, err, leave.ErrNotApproved)
	})
}

func TestLeaveService_ApprovedDaysForRange(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRequestRepo()
	svc := NewLeaveService(nil, repo, 0)

	annual, err := svc.Submit(ctx, "emp-1", submitReq("annual", "2025-05-30", "2025-06-03"))
	require.NoError(t, err)
	_, err = repo.UpdateStatus(ctx, annual.ID, leave.StatusPending, leave.StatusApproved)
	require.NoError(t, err)

	unpaid, err := svc.Submit(ctx, "emp-1", submitReq("unpaid", "2025-06-10", "2025-06-12"))
	require.NoError(t, err)
	_, err = repo.UpdateStatus(ctx, unpaid.ID, leave.StatusPending, leave.StatusApproved)
	require.NoError(t, err)

	// Pending requests contribute nothing.
	_, err = svc.Submit(ctx, "emp-1", submitReq("sick", "2025-06-20", "2025-06-22"))
	require.NoError(t, err)

	days, err := svc.ApprovedDaysForRange(ctx, "emp-1", day("2025-06-01"), day("2025-07-01"))
	require.NoError(t, err)

	// The May days of the annual request are clipped off.
	require.Len(t, days, 4)

	d, ok := days[day("2025-06-02")]
	require.True(t, ok)
	assert.True(t, d.Paid)
	assert.Equal(t, leave.TypeAnnual, d.Type)

	d, ok = days[day("2025-06-11")]
	require.True(t, ok)
	assert.False(t, d.Paid)

	_, ok = days[day("2025-05-31")]
	assert.False(t, ok)
	_, ok = days[day("2025-06-20")]
	assert.False(t, ok)
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bittarwork/altrohr-payroll/internal/domain/attendance"
)

// fakeAttendanceService answers with canned results, enough to exercise the
// handler's decoding and error mapping.
type fakeAttendanceService struct {
	clockInErr error
	events     []attendance.Event
}

func (f *fakeAttendanceService) ClockIn(_ context.Context, employeeID string, ts time.Time) (attendance.Event, error) {
	if f.clockInErr != nil {
		return attendance.Event{}, f.clockInErr
	}
	return attendance.Event{ID: "ev-1", EmployeeID: employeeID, Timestamp: ts, Kind: attendance.EventClockIn}, nil
}

func (f *fakeAttendanceService) ClockOut(_ context.Context, employeeID string, ts time.Time) (attendance.Event, error) {
	return attendance.Event{ID: "ev-2", EmployeeID: employeeID, Timestamp: ts, Kind: attendance.EventClockOut}, nil
}

func (f *fakeAttendanceService) SessionsForRange(_ context.Context, _ string, _, _ time.Time) ([]attendance.Session, []attendance.Anomaly, error) {
	return nil, nil, nil
}

func (f *fakeAttendanceService) EventsForRange(_ context.Context, _ string, _, _ time.Time) ([]attendance.Event, error) {
	return f.events, nil
}

func authenticatedRequest(t *testing.T, method, target string, body []byte, employeeID string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"is_admin":    false,
		"type":        "access",
	})
	require.NoError(t, err)

	return req.WithContext(jwtauth.NewContext(req.Context(), token, nil))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope
}

func TestAttendanceHandler_ClockIn(t *testing.T) {
	handler := NewAttendanceHandler(&fakeAttendanceService{})

	body := []byte(`{"timestamp":"2025-06-02T09:00:00Z"}`)
	req := authenticatedRequest(t, http.MethodPost, "/api/v1/attendance/clock-in", body, "emp-1")
	rec := httptest.NewRecorder()

	handler.ClockIn(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope["success"])
}

func TestAttendanceHandler_ClockIn_EmptyBodyUsesNow(t *testing.T) {
	handler := NewAttendanceHandler(&fakeAttendanceService{})

	req := authenticatedRequest(t, http.MethodPost, "/api/v1/attendance/clock-in", nil, "emp-1")
	rec := httptest.NewRecorder()

	handler.ClockIn(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAttendanceHandler_ClockIn_OpenSessionConflict(t *testing.T) {
	handler := NewAttendanceHandler(&fakeAttendanceService{clockInErr: attendance.ErrOpenSessionExists})

	req := authenticatedRequest(t, http.MethodPost, "/api/v1/attendance/clock-in", nil, "emp-1")
	rec := httptest.NewRecorder()

	handler.ClockIn(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, false, envelope["success"])
}

func TestAttendanceHandler_ClockIn_InvalidTimestamp(t *testing.T) {
	handler := NewAttendanceHandler(&fakeAttendanceService{})

	body := []byte(`{"timestamp":"yesterday"}`)
	req := authenticatedRequest(t, http.MethodPost, "/api/v1/attendance/clock-in", body, "emp-1")
	rec := httptest.NewRecorder()

	handler.ClockIn(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAttendanceHandler_MissingIdentity(t *testing.T) {
	handler := NewAttendanceHandler(&fakeAttendanceService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/clock-in", nil)
	rec := httptest.NewRecorder()

	handler.ClockIn(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAttendanceHandler_GetMyAttendance(t *testing.T) {
	handler := NewAttendanceHandler(&fakeAttendanceService{
		events: []attendance.Event{
			{ID: "ev-1", EmployeeID: "emp-1", Timestamp: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), Kind: attendance.EventClockIn},
		},
	})

	req := authenticatedRequest(t, http.MethodGet, "/api/v1/attendance/my?from=2025-06-01&to=2025-07-01", nil, "emp-1")
	rec := httptest.NewRecorder()

	handler.GetMyAttendance(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	data, ok := envelope["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, data, 1)
}

func TestAttendanceHandler_GetMyAttendance_BadRange(t *testing.T) {
	handler := NewAttendanceHandler(&fakeAttendanceService{})

	req := authenticatedRequest(t, http.MethodGet, "/api/v1/attendance/my?from=junk", nil, "emp-1")
	rec := httptest.NewRecorder()

	handler.GetMyAttendance(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

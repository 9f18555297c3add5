package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bittarwork/altrohr-payroll/internal/domain/attendance"
	"github.com/bittarwork/altrohr-payroll/internal/handler/http/middleware"
	"github.com/bittarwork/altrohr-payroll/internal/handler/http/response"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	GetMySessions(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.CallerEmployeeID(r)
	if !ok {
		response.Unauthorized(w, "Missing employee identity")
		return
	}

	req, ok := decodeClockRequest(w, r)
	if !ok {
		return
	}

	ts, err := req.ParseTimestamp(time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	ev, err := h.attendanceService.ClockIn(r.Context(), employeeID, ts)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock in successful", map[string]interface{}{
		"attendance": map[string]interface{}{"clockIn": attendance.NewEventResponse(ev)},
	})
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.CallerEmployeeID(r)
	if !ok {
		response.Unauthorized(w, "Missing employee identity")
		return
	}

	req, ok := decodeClockRequest(w, r)
	if !ok {
		return
	}

	ts, err := req.ParseTimestamp(time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	ev, err := h.attendanceService.ClockOut(r.Context(), employeeID, ts)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock out successful", map[string]interface{}{
		"attendance": map[string]interface{}{"clockOut": attendance.NewEventResponse(ev)},
	})
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.CallerEmployeeID(r)
	if !ok {
		response.Unauthorized(w, "Missing employee identity")
		return
	}

	from, to, err := parseRangeQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	events, err := h.attendanceService.EventsForRange(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]attendance.EventResponse, 0, len(events))
	for _, ev := range events {
		result = append(result, attendance.NewEventResponse(ev))
	}

	response.Success(w, result)
}

// GetMySessions implements AttendanceHandler. It returns the derived per-day
// sessions rather than the raw event stream, anomalies included.
func (h *attendanceHandlerImpl) GetMySessions(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.CallerEmployeeID(r)
	if !ok {
		response.Unauthorized(w, "Missing employee identity")
		return
	}

	from, to, err := parseRangeQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	sessions, anomalies, err := h.attendanceService.SessionsForRange(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]attendance.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		result = append(result, attendance.NewSessionResponse(s))
	}

	response.Success(w, map[string]interface{}{
		"sessions":  result,
		"anomalies": anomalies,
	})
}

func decodeClockRequest(w http.ResponseWriter, r *http.Request) (attendance.ClockRequest, bool) {
	var req attendance.ClockRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return attendance.ClockRequest{}, false
		}
	}
	return req, true
}

// parseRangeQuery reads optional from/to date query params, defaulting to
// the last 31 days.
func parseRangeQuery(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := attendance.DayOf(now).AddDate(0, 0, -31)
	to := attendance.DayOf(now).AddDate(0, 0, 1)

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, attendance.ErrInvalidRange
		}
		from = parsed.UTC()
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, attendance.ErrInvalidRange
		}
		to = parsed.UTC()
	}
	return from, to, nil
}

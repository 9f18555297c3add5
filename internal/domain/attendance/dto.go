package attendance

import (
	"time"
)

type ClockRequest struct {
	// Timestamp is optional; the current time is used when absent.
	Timestamp *string `json:"timestamp,omitempty"`
}

// ParseTimestamp returns the requested clock time or now.
func (r ClockRequest) ParseTimestamp(now time.Time) (time.Time, error) {
	if r.Timestamp == nil || *r.Timestamp == "" {
		return now.UTC(), nil
	}
	ts, err := time.Parse(time.RFC3339, *r.Timestamp)
	if err != nil {
		return time.Time{}, ErrInvalidTimestamp
	}
	return ts.UTC(), nil
}

type EventResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	Timestamp  string `json:"timestamp"`
	Kind       string `json:"kind"`
}

func NewEventResponse(ev Event) EventResponse {
	return EventResponse{
		ID:         ev.ID,
		EmployeeID: ev.EmployeeID,
		Timestamp:  ev.Timestamp.UTC().Format(time.RFC3339),
		Kind:       string(ev.Kind),
	}
}

type SessionResponse struct {
	EmployeeID string  `json:"employeeId"`
	Day        string  `json:"day"`
	Start      string  `json:"start"`
	End        *string `json:"end,omitempty"`
	Minutes    int     `json:"minutes"`
	Open       bool    `json:"open"`
}

func NewSessionResponse(s Session) SessionResponse {
	resp := SessionResponse{
		EmployeeID: s.EmployeeID,
		Day:        s.Day().Format("2006-01-02"),
		Start:      s.Start.Format(time.RFC3339),
		Minutes:    int(s.Duration().Minutes()),
		Open:       s.Open,
	}
	if !s.Open {
		end := s.End.Format(time.RFC3339)
		resp.End = &end
	}
	return resp
}

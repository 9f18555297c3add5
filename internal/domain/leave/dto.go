package leave

import (
	"time"
)

type SubmitRequest struct {
	LeaveType string `json:"leaveType"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Parse validates the payload and returns the typed fields.
func (r SubmitRequest) Parse() (Type, time.Time, time.Time, error) {
	t := Type(r.LeaveType)
	if !t.Valid() {
		return "", time.Time{}, time.Time{}, ErrInvalidType
	}
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return "", time.Time{}, time.Time{}, ErrInvalidDates
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return "", time.Time{}, time.Time{}, ErrInvalidDates
	}
	if !end.After(start) {
		return "", time.Time{}, time.Time{}, ErrInvalidDates
	}
	return t, start.UTC(), end.UTC(), nil
}

type RequestResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	LeaveType  string `json:"leaveType"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Status     string `json:"status"`
	Paid       bool   `json:"paid"`
	CreatedAt  string `json:"createdAt"`
}

func NewRequestResponse(req Request) RequestResponse {
	return RequestResponse{
		ID:         req.ID,
		EmployeeID: req.EmployeeID,
		LeaveType:  string(req.Type),
		StartDate:  req.StartDate.Format("2006-01-02"),
		EndDate:    req.EndDate.Format("2006-01-02"),
		Status:     string(req.Status),
		Paid:       req.Type.Paid(),
		CreatedAt:  req.CreatedAt.UTC().Format(time.RFC3339),
	}
}

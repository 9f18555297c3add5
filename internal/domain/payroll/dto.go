package payroll

import (
	"time"
)

type GenerateStatementRequest struct {
	UserID string `json:"userId"`
	Month  string `json:"month"`
}

type StatementResponse struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employeeId"`
	Month         string    `json:"month"`
	GrossPay      string    `json:"grossPay"`
	RegularHours  string    `json:"regularHours"`
	OvertimeHours string    `json:"overtimeHours"`
	PaidLeaveDays int       `json:"paidLeaveDays"`
	UnpaidDays    int       `json:"unpaidDays"`
	Warnings      []Warning `json:"warnings"`
	Version       int       `json:"version"`
	CreatedAt     string    `json:"createdAt"`
}

func NewStatementResponse(st Statement) StatementResponse {
	warnings := st.Warnings
	if warnings == nil {
		warnings = []Warning{}
	}
	return StatementResponse{
		ID:            st.ID,
		EmployeeID:    st.EmployeeID,
		Month:         st.Month.String(),
		GrossPay:      st.GrossPay.StringFixed(2),
		RegularHours:  st.RegularHours.String(),
		OvertimeHours: st.OvertimeHours.String(),
		PaidLeaveDays: st.PaidLeaveDays,
		UnpaidDays:    st.UnpaidDays,
		Warnings:      warnings,
		Version:       st.Version,
		CreatedAt:     st.CreatedAt.UTC().Format(time.RFC3339),
	}
}

package compensation

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreatePlanRequest struct {
	EmployeeID    string  `json:"employeeId"`
	Kind          string  `json:"kind"`
	EffectiveFrom string  `json:"effectiveFrom"`
	BaseSalary    *string `json:"baseSalary,omitempty"`
	Rate          *string `json:"rate,omitempty"`
	OvertimeRate  *string `json:"overtimeRate,omitempty"`
	HoursPerDay   *string `json:"hoursPerDay,omitempty"`
}

// Parse builds and validates a Plan out of the payload.
func (r CreatePlanRequest) Parse() (Plan, error) {
	effectiveFrom, err := time.Parse("2006-01-02", r.EffectiveFrom)
	if err != nil {
		return Plan{}, ErrInvalidPlan
	}

	plan := Plan{
		EmployeeID:    r.EmployeeID,
		Kind:          Kind(r.Kind),
		EffectiveFrom: effectiveFrom.UTC(),
	}

	switch plan.Kind {
	case KindMonthly:
		if r.BaseSalary == nil {
			return Plan{}, ErrInvalidPlan
		}
		base, err := decimal.NewFromString(*r.BaseSalary)
		if err != nil {
			return Plan{}, ErrInvalidPlan
		}
		plan.Monthly = &MonthlyTerms{BaseSalary: base}
	case KindHourly:
		if r.Rate == nil || r.OvertimeRate == nil || r.HoursPerDay == nil {
			return Plan{}, ErrInvalidPlan
		}
		rate, err := decimal.NewFromString(*r.Rate)
		if err != nil {
			return Plan{}, ErrInvalidPlan
		}
		overtime, err := decimal.NewFromString(*r.OvertimeRate)
		if err != nil {
			return Plan{}, ErrInvalidPlan
		}
		hoursPerDay, err := decimal.NewFromString(*r.HoursPerDay)
		if err != nil {
			return Plan{}, ErrInvalidPlan
		}
		plan.Hourly = &HourlyTerms{Rate: rate, OvertimeRate: overtime, HoursPerDay: hoursPerDay}
	default:
		return Plan{}, ErrInvalidPlan
	}

	if err := plan.Validate(); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

type PlanResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employeeId"`
	Kind          string  `json:"kind"`
	EffectiveFrom string  `json:"effectiveFrom"`
	BaseSalary    *string `json:"baseSalary,omitempty"`
	Rate          *string `json:"rate,omitempty"`
	OvertimeRate  *string `json:"overtimeRate,omitempty"`
	HoursPerDay   *string `json:"hoursPerDay,omitempty"`
}

func NewPlanResponse(p Plan) PlanResponse {
	resp := PlanResponse{
		ID:            p.ID,
		EmployeeID:    p.EmployeeID,
		Kind:          string(p.Kind),
		EffectiveFrom: p.EffectiveFrom.Format("2006-01-02"),
	}
	switch p.Kind {
	case KindMonthly:
		base := p.Monthly.BaseSalary.String()
		resp.BaseSalary = &base
	case KindHourly:
		rate := p.Hourly.Rate.String()
		overtime := p.Hourly.OvertimeRate.String()
		hoursPerDay := p.Hourly.HoursPerDay.String()
		resp.Rate = &rate
		resp.OvertimeRate = &overtime
		resp.HoursPerDay = &hoursPerDay
	}
	return resp
}

package compensation

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind enum
type Kind string

const (
	KindMonthly Kind = "monthly"
	KindHourly  Kind = "hourly"
)

// MonthlyTerms pays a fixed salary per month, pro-rated down for absences.
type MonthlyTerms struct {
	BaseSalary decimal.Decimal
}

// HourlyTerms pays per worked hour with a per-day overtime threshold.
type HourlyTerms struct {
	Rate         decimal.Decimal
	OvertimeRate decimal.Decimal
	HoursPerDay  decimal.Decimal
}

// Plan is one entry in an employee's compensation history. The history is
// append-only; the plan effective for a date is the one with the greatest
// EffectiveFrom <= date. Exactly one of Monthly/Hourly is set, matching Kind,
// so the aggregator can switch on Kind without null-checking stray fields.
type Plan struct {
	ID            string
	EmployeeID    string
	Kind          Kind
	Monthly       *MonthlyTerms
	Hourly        *HourlyTerms
	EffectiveFrom time.Time
	CreatedAt     time.Time
}

// Validate checks the kind/terms pairing and the numeric constraints.
func (p Plan) Validate() error {
	switch p.Kind {
	case KindMonthly:
		if p.Monthly == nil || p.Hourly != nil {
			return ErrInvalidPlan
		}
		if p.Monthly.BaseSalary.IsNegative() {
			return ErrInvalidPlan
		}
	case KindHourly:
		if p.Hourly == nil || p.Monthly != nil {
			return ErrInvalidPlan
		}
		h := p.Hourly
		if h.Rate.IsNegative() || h.OvertimeRate.IsNegative() || !h.HoursPerDay.IsPositive() {
			return ErrInvalidPlan
		}
	default:
		return ErrInvalidPlan
	}
	if p.EmployeeID == "" || p.EffectiveFrom.IsZero() {
		return ErrInvalidPlan
	}
	return nil
}

// ResolveAt picks the plan with the greatest EffectiveFrom <= date out of an
// employee's history. The second return is false when no plan is effective.
func ResolveAt(plans []Plan, date time.Time) (Plan, bool) {
	var (
		best  Plan
		found bool
	)
	for _, p := range plans {
		if p.EffectiveFrom.After(date) {
			continue
		}
		if !found || p.EffectiveFrom.After(best.EffectiveFrom) {
			best = p
			found = true
		}
	}
	return best, found
}

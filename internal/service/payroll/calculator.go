package payroll

import (
	"fmt"
	"time"

	"github.com/bittarwork/altrohr-payroll/internal/domain/attendance"
	"github.com/bittarwork/altrohr-payroll/internal/domain/compensation"
	"github.com/bittarwork/altrohr-payroll/internal/domain/leave"
	"github.com/bittarwork/altrohr-payroll/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Inputs is everything Compute needs, fetched up front. Compute is a pure
// function of this struct, which is what makes statements reproducible and
// per-employee report computations safe to run in parallel.
type Inputs struct {
	Sessions  []attendance.Session
	Anomalies []attendance.Anomaly
	LeaveDays map[time.Time]leave.Day
	Plans     []compensation.Plan
}

var secondsPerHour = decimal.NewFromInt(3600)

// Compute reconciles one employee month into a statement.
//
// Coverage per day is exactly one of worked / on-leave / absent, with
// approved leave authoritative over attendance. Money is kept at full
// decimal precision through the day loop and rounded half-up to two places
// exactly once, at the end.
func Compute(employeeID string, month payroll.Month, in Inputs) (payroll.Statement, error) {
	st := payroll.Statement{
		EmployeeID: employeeID,
		Month:      month,
	}

	worked := attendance.WorkedByDay(in.Sessions)
	daysInMonth := decimal.NewFromInt(int64(month.DaysIn()))

	for _, anomaly := range in.Anomalies {
		day := attendance.DayOf(anomaly.At)
		if day.Before(month.Start()) || !day.Before(month.End()) {
			continue
		}
		st.Warnings = append(st.Warnings, payroll.Warning{
			Code:    anomalyWarningCode(anomaly.Code),
			Date:    day.Format("2006-01-02"),
			Message: anomaly.Message,
		})
	}

	// Per monthly plan: how many days it governed and how many of those
	// are deducted. Keeping the counts and multiplying before dividing
	// makes a fully covered month pay the base salary exactly.
	type monthlySegment struct {
		base          decimal.Decimal
		effectiveDays int64
		deductedDays  int64
	}
	monthlySegments := make(map[string]*monthlySegment)

	var (
		hourlyGross  = decimal.Zero
		resolvedDays int
	)

	for _, day := range month.Days() {
		plan, ok := compensation.ResolveAt(in.Plans, day)
		if !ok {
			st.Warnings = append(st.Warnings, payroll.Warning{
				Code:    payroll.WarningNoPlanEffective,
				Date:    day.Format("2006-01-02"),
				Message: "no compensation plan effective, day excluded",
			})
			continue
		}
		resolvedDays++

		leaveDay, onLeave := in.LeaveDays[day]
		workedDur, hasWork := worked[day]

		if onLeave && hasWork {
			st.Warnings = append(st.Warnings, payroll.Warning{
				Code:    payroll.WarningLeaveAttendanceOverlap,
				Date:    day.Format("2006-01-02"),
				Message: fmt.Sprintf("attendance recorded on an approved %s leave day, ignored for pay", leaveDay.Type),
			})
		}

		switch plan.Kind {
		case compensation.KindHourly:
			terms := plan.Hourly
			switch {
			case onLeave:
				if leaveDay.Paid {
					hourlyGross = hourlyGross.Add(terms.HoursPerDay.Mul(terms.Rate))
					st.PaidLeaveDays++
				} else {
					st.UnpaidDays++
				}
			case hasWork:
				workedHours := decimal.NewFromInt(int64(workedDur.Seconds())).Div(secondsPerHour)
				regular := decimal.Min(workedHours, terms.HoursPerDay)
				overtime := decimal.Max(workedHours.Sub(terms.HoursPerDay), decimal.Zero)
				hourlyGross = hourlyGross.
					Add(regular.Mul(terms.Rate)).
					Add(overtime.Mul(terms.OvertimeRate))
				st.RegularHours = st.RegularHours.Add(regular)
				st.OvertimeHours = st.OvertimeHours.Add(overtime)
			default:
				st.UnpaidDays++
			}

		case compensation.KindMonthly:
			seg, ok := monthlySegments[plan.ID]
			if !ok {
				seg = &monthlySegment{base: plan.Monthly.BaseSalary}
				monthlySegments[plan.ID] = seg
			}
			seg.effectiveDays++

			switch {
			case onLeave:
				if leaveDay.Paid {
					st.PaidLeaveDays++
				} else {
					seg.deductedDays++
					st.UnpaidDays++
				}
			case hasWork:
				// Fixed salary: hours are tracked for the statement
				// but carry no extra pay and no overtime threshold.
				workedHours := decimal.NewFromInt(int64(workedDur.Seconds())).Div(secondsPerHour)
				st.RegularHours = st.RegularHours.Add(workedHours)
			default:
				seg.deductedDays++
				st.UnpaidDays++
			}
		}
	}

	if resolvedDays == 0 {
		return payroll.Statement{}, payroll.ErrNoPlanForPeriod
	}

	gross := hourlyGross
	for _, seg := range monthlySegments {
		paidDays := decimal.NewFromInt(seg.effectiveDays - seg.deductedDays)
		gross = gross.Add(seg.base.Mul(paidDays).Div(daysInMonth))
	}

	// The single rounding step of the whole computation.
	st.GrossPay = gross.Round(2)
	return st, nil
}

func anomalyWarningCode(code attendance.AnomalyCode) payroll.WarningCode {
	switch code {
	case attendance.AnomalyOpenSession:
		return payroll.WarningOpenSession
	case attendance.AnomalyOrphanClockOut:
		return payroll.WarningOrphanClockOut
	default:
		return payroll.WarningInvalidSession
	}
}

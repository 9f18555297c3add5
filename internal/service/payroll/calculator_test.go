package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bittarwork/altrohr-payroll/internal/domain/attendance"
	"github.com/bittarwork/altrohr-payroll/internal/domain/compensation"
	"github.com/bittarwork/altrohr-payroll/internal/domain/leave"
	"github.com/bittarwork/altrohr-payroll/internal/domain/payroll"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

// session returns a closed session of the given length starting at 09:00 UTC.
func session(dayStr string, hours int) attendance.Session {
	start := day(dayStr).Add(9 * time.Hour)
	return attendance.Session{
		EmployeeID: "emp-1",
		Start:      start,
		End:        start.Add(time.Duration(hours) * time.Hour),
	}
}

func hourlyPlan(effectiveFrom string, rate, overtimeRate, hoursPerDay int64) compensation.Plan {
	return compensation.Plan{
		ID:         "plan-hourly",
		EmployeeID: "emp-1",
		Kind:       compensation.KindHourly,
		Hourly: &compensation.HourlyTerms{
			Rate:         decimal.NewFromInt(rate),
			OvertimeRate: decimal.NewFromInt(overtimeRate),
			HoursPerDay:  decimal.NewFromInt(hoursPerDay),
		},
		EffectiveFrom: day(effectiveFrom),
	}
}

func monthlyPlan(id, effectiveFrom string, base int64) compensation.Plan {
	return compensation.Plan{
		ID:            id,
		EmployeeID:    "emp-1",
		Kind:          compensation.KindMonthly,
		Monthly:       &compensation.MonthlyTerms{BaseSalary: decimal.NewFromInt(base)},
		EffectiveFrom: day(effectiveFrom),
	}
}

func leaveDays(leaveType leave.Type, from, to string) map[time.Time]leave.Day {
	days := make(map[time.Time]leave.Day)
	for d := day(from); d.Before(day(to)); d = d.AddDate(0, 0, 1) {
		days[d] = leave.Day{Date: d, Type: leaveType, Paid: leaveType.Paid()}
	}
	return days
}

func june() payroll.Month {
	return payroll.Month{Year: 2025, Month: time.June}
}

func TestCompute_HourlyDayWithOvertime(t *testing.T) {
	st, err := Compute("emp-1", june(), Inputs{
		Sessions: []attendance.Session{session("2025-06-02", 9)},
		Plans:    []compensation.Plan{hourlyPlan("2025-01-01", 3000, 5000, 8)},
	})
	require.NoError(t, err)

	// 8h at 3000 plus 1h at 5000.
	assert.Equal(t, "29000.00", st.GrossPay.StringFixed(2))
	assert.True(t, st.RegularHours.Equal(decimal.NewFromInt(8)))
	assert.True(t, st.OvertimeHours.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, 29, st.UnpaidDays)
}

func TestCompute_MonthlyProRatedForAbsences(t *testing.T) {
	// 28 paid leave days, 2 absent days in a 30 day month.
	st, err := Compute("emp-1", june(), Inputs{
		LeaveDays: leaveDays(leave.TypeAnnual, "2025-06-01", "2025-06-29"),
		Plans:     []compensation.Plan{monthlyPlan("p1", "2025-01-01", 500000)},
	})
	require.NoError(t, err)

	assert.Equal(t, "466666.67", st.GrossPay.StringFixed(2))
	assert.Equal(t, 28, st.PaidLeaveDays)
	assert.Equal(t, 2, st.UnpaidDays)
}

func TestCompute_FullyCoveredMonthPaysBaseExactly(t *testing.T) {
	month := payroll.Month{Year: 2025, Month: time.February}
	var sessions []attendance.Session
	for d := month.Start(); d.Before(month.End()); d = d.AddDate(0, 0, 1) {
		sessions = append(sessions, session(d.Format("2006-01-02"), 8))
	}

	st, err := Compute("emp-1", month, Inputs{
		Sessions: sessions,
		Plans:    []compensation.Plan{monthlyPlan("p1", "2025-01-01", 700001)},
	})
	require.NoError(t, err)

	assert.True(t, st.GrossPay.Equal(decimal.NewFromInt(700001)),
		"fully covered month must pay the base salary exactly, got %s", st.GrossPay)
	assert.Equal(t, 0, st.UnpaidDays)
}

func TestCompute_LeaveSupersedesAttendance(t *testing.T) {
	st, err := Compute("emp-1", june(), Inputs{
		Sessions:  []attendance.Session{session("2025-06-02", 9)},
		LeaveDays: leaveDays(leave.TypeSick, "2025-06-02", "2025-06-03"),
		Plans:     []compensation.Plan{hourlyPlan("2025-01-01", 3000, 5000, 8)},
	})
	require.NoError(t, err)

	// The paid leave day pays the standard day, the worked hours are ignored.
	assert.Equal(t, "24000.00", st.GrossPay.StringFixed(2))
	assert.Equal(t, 1, st.PaidLeaveDays)
	assert.True(t, st.RegularHours.IsZero())
	assert.True(t, st.OvertimeHours.IsZero())

	require.Len(t, st.Warnings, 1)
	assert.Equal(t, payroll.WarningLeaveAttendanceOverlap, st.Warnings[0].Code)
	assert.Equal(t, "2025-06-02", st.Warnings[0].Date)
}

func TestCompute_UnpaidLeaveDayEarnsNothing(t *testing.T) {
	st, err := Compute("emp-1", june(), Inputs{
		LeaveDays: leaveDays(leave.TypeUnpaid, "2025-06-02", "2025-06-03"),
		Plans:     []compensation.Plan{hourlyPlan("2025-01-01", 3000, 5000, 8)},
	})
	require.NoError(t, err)

	assert.True(t, st.GrossPay.IsZero())
	assert.Equal(t, 0, st.PaidLeaveDays)
	assert.Equal(t, 30, st.UnpaidDays)
}

func TestCompute_MidMonthPlanChange(t *testing.T) {
	var sessions []attendance.Session
	for d := june().Start(); d.Before(june().End()); d = d.AddDate(0, 0, 1) {
		sessions = append(sessions, session(d.Format("2006-01-02"), 8))
	}

	// p1 governs June 1-15, p2 June 16-30, 15 days each.
	st, err := Compute("emp-1", june(), Inputs{
		Sessions: sessions,
		Plans: []compensation.Plan{
			monthlyPlan("p1", "2025-01-01", 300000),
			monthlyPlan("p2", "2025-06-16", 600000),
		},
	})
	require.NoError(t, err)

	// 300000*15/30 + 600000*15/30
	assert.Equal(t, "450000.00", st.GrossPay.StringFixed(2))
}

func TestCompute_NoPlanForPeriod(t *testing.T) {
	_, err := Compute("emp-1", june(), Inputs{
		Sessions: []attendance.Session{session("2025-06-02", 8)},
	})
	assert.ErrorIs(t, err, payroll.ErrNoPlanForPeriod)

	_, err = Compute("emp-1", june(), Inputs{
		Plans: []compensation.Plan{monthlyPlan("p1", "2025-07-01", 500000)},
	})
	assert.ErrorIs(t, err, payroll.ErrNoPlanForPeriod)
}

func TestCompute_DaysBeforeFirstPlanAreExcluded(t *testing.T) {
	var sessions []attendance.Session
	for d := day("2025-06-16"); d.Before(june().End()); d = d.AddDate(0, 0, 1) {
		sessions = append(sessions, session(d.Format("2006-01-02"), 8))
	}

	st, err := Compute("emp-1", june(), Inputs{
		Sessions: sessions,
		Plans:    []compensation.Plan{monthlyPlan("p1", "2025-06-16", 500000)},
	})
	require.NoError(t, err)

	// The governed half is fully covered: 500000*15/30.
	assert.Equal(t, "250000.00", st.GrossPay.StringFixed(2))

	var excluded int
	for _, w := range st.Warnings {
		if w.Code == payroll.WarningNoPlanEffective {
			excluded++
		}
	}
	assert.Equal(t, 15, excluded)
}

func TestCompute_AnomaliesBecomeWarnings(t *testing.T) {
	st, err := Compute("emp-1", june(), Inputs{
		Sessions: []attendance.Session{session("2025-06-02", 8)},
		Anomalies: []attendance.Anomaly{
			{Code: attendance.AnomalyOrphanClockOut, At: day("2025-06-05").Add(17 * time.Hour)},
			{Code: attendance.AnomalyOpenSession, At: day("2025-05-31").Add(9 * time.Hour)},
		},
		Plans: []compensation.Plan{hourlyPlan("2025-01-01", 3000, 5000, 8)},
	})
	require.NoError(t, err)

	// The May anomaly falls outside the month and is dropped.
	require.Len(t, st.Warnings, 1)
	assert.Equal(t, payroll.WarningOrphanClockOut, st.Warnings[0].Code)
	assert.Equal(t, "2025-06-05", st.Warnings[0].Date)
}

func TestCompute_MoreWorkNeverPaysLess(t *testing.T) {
	plans := []compensation.Plan{hourlyPlan("2025-01-01", 3000, 5000, 8)}

	prev := decimal.Zero
	for hours := 1; hours <= 12; hours++ {
		st, err := Compute("emp-1", june(), Inputs{
			Sessions: []attendance.Session{session("2025-06-02", hours)},
			Plans:    plans,
		})
		require.NoError(t, err)
		assert.True(t, st.GrossPay.GreaterThanOrEqual(prev),
			"%d worked hours paid %s, less than the previous hour's %s", hours, st.GrossPay, prev)
		prev = st.GrossPay
	}
}

func TestCompute_ZeroActivityMonth(t *testing.T) {
	t.Run("monthly", func(t *testing.T) {
		st, err := Compute("emp-1", june(), Inputs{
			Plans: []compensation.Plan{monthlyPlan("p1", "2025-01-01", 500000)},
		})
		require.NoError(t, err)

		assert.True(t, st.GrossPay.IsZero())
		assert.Equal(t, 30, st.UnpaidDays)
		assert.Equal(t, 0, st.PaidLeaveDays)
	})

	t.Run("hourly", func(t *testing.T) {
		st, err := Compute("emp-1", june(), Inputs{
			Plans: []compensation.Plan{hourlyPlan("2025-01-01", 3000, 5000, 8)},
		})
		require.NoError(t, err)

		assert.True(t, st.GrossPay.IsZero())
		assert.Equal(t, 30, st.UnpaidDays)
	})
}

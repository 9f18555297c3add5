package postgresql

import (
	"context"
	"fmt"

	"github.com/bittarwork/altrohr-payroll/internal/domain/compensation"
	"github.com/bittarwork/altrohr-payroll/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type compensationPlanRepository struct {
	db *database.DB
}

func NewCompensationPlanRepository(db *database.DB) compensation.PlanRepository {
	return &compensationPlanRepository{db: db}
}

func (r *compensationPlanRepository) Create(ctx context.Context, plan compensation.Plan) (compensation.Plan, error) {
	q := GetQuerier(ctx, r.db)

	var (
		baseSalary   *decimal.Decimal
		rate         *decimal.Decimal
		overtimeRate *decimal.Decimal
		hoursPerDay  *decimal.Decimal
	)
	switch plan.Kind {
	case compensation.KindMonthly:
		baseSalary = &plan.Monthly.BaseSalary
	case compensation.KindHourly:
		rate = &plan.Hourly.Rate
		overtimeRate = &plan.Hourly.OvertimeRate
		hoursPerDay = &plan.Hourly.HoursPerDay
	}

	query := `
		INSERT INTO compensation_plans (id, employee_id, kind, base_salary, hourly_rate, overtime_rate, hours_per_day, effective_from)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, employee_id, kind, base_salary, hourly_rate, overtime_rate, hours_per_day, effective_from, created_at
	`

	row := q.QueryRow(ctx, query,
		uuid.NewString(), plan.EmployeeID, plan.Kind,
		baseSalary, rate, overtimeRate, hoursPerDay, plan.EffectiveFrom,
	)
	created, err := scanCompensationPlan(row)
	if err != nil {
		return compensation.Plan{}, fmt.Errorf("failed to create compensation plan: %w", err)
	}

	return created, nil
}

func (r *compensationPlanRepository) HistoryForEmployee(ctx context.Context, employeeID string) ([]compensation.Plan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, kind, base_salary, hourly_rate, overtime_rate, hours_per_day, effective_from, created_at
		FROM compensation_plans
		WHERE employee_id = $1
		ORDER BY effective_from ASC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list compensation plans: %w", err)
	}
	defer rows.Close()

	var plans []compensation.Plan
	for rows.Next() {
		plan, err := scanCompensationPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan compensation plan: %w", err)
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate compensation plans: %w", err)
	}

	return plans, nil
}

func scanCompensationPlan(row pgx.Row) (compensation.Plan, error) {
	var (
		plan         compensation.Plan
		baseSalary   *decimal.Decimal
		rate         *decimal.Decimal
		overtimeRate *decimal.Decimal
		hoursPerDay  *decimal.Decimal
	)
	if err := row.Scan(
		&plan.ID, &plan.EmployeeID, &plan.Kind,
		&baseSalary, &rate, &overtimeRate, &hoursPerDay,
		&plan.EffectiveFrom, &plan.CreatedAt,
	); err != nil {
		return compensation.Plan{}, err
	}

	switch plan.Kind {
	case compensation.KindMonthly:
		if baseSalary != nil {
			plan.Monthly = &compensation.MonthlyTerms{BaseSalary: *baseSalary}
		}
	case compensation.KindHourly:
		if rate != nil && overtimeRate != nil && hoursPerDay != nil {
			plan.Hourly = &compensation.HourlyTerms{
				Rate:         *rate,
				OvertimeRate: *overtimeRate,
				HoursPerDay:  *hoursPerDay,
			}
		}
	}

	return plan, nil
}

package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bittarwork/altrohr-payroll/internal/domain/payroll"
	"github.com/bittarwork/altrohr-payroll/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type statementRepository struct {
	db *database.DB
}

func NewStatementRepository(db *database.DB) payroll.StatementRepository {
	return &statementRepository{db: db}
}

func (r *statementRepository) Create(ctx context.Context, st payroll.Statement) (payroll.Statement, error) {
	q := GetQuerier(ctx, r.db)

	warnings, err := json.Marshal(st.Warnings)
	if err != nil {
		return payroll.Statement{}, fmt.Errorf("failed to marshal statement warnings: %w", err)
	}

	query := `
		INSERT INTO salary_statements (
			id, employee_id, month, gross_pay, regular_hours, overtime_hours,
			paid_leave_days, unpaid_days, warnings, inputs_hash, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`

	created := st
	err = q.QueryRow(ctx, query,
		uuid.NewString(), st.EmployeeID, st.Month.String(), st.GrossPay,
		st.RegularHours, st.OvertimeHours, st.PaidLeaveDays, st.UnpaidDays,
		warnings, st.InputsHash, st.Version,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return payroll.Statement{}, fmt.Errorf("failed to create salary statement: %w", err)
	}

	return created, nil
}

func (r *statementRepository) GetByInputsHash(ctx context.Context, employeeID string, month payroll.Month, inputsHash string) (payroll.Statement, error) {
	q := GetQuerier(ctx, r.db)

	query := statementSelect + `
		WHERE employee_id = $1 AND month = $2 AND inputs_hash = $3
	`

	st, err := scanStatement(q.QueryRow(ctx, query, employeeID, month.String(), inputsHash))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Statement{}, payroll.ErrStatementNotFound
		}
		return payroll.Statement{}, fmt.Errorf("failed to get salary statement by inputs hash: %w", err)
	}

	return st, nil
}

func (r *statementRepository) LatestVersion(ctx context.Context, employeeID string, month payroll.Month) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(MAX(version), 0)
		FROM salary_statements
		WHERE employee_id = $1 AND month = $2
	`

	var version int
	if err := q.QueryRow(ctx, query, employeeID, month.String()).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get latest statement version: %w", err)
	}

	return version, nil
}

func (r *statementRepository) GetByID(ctx context.Context, id string) (payroll.Statement, error) {
	q := GetQuerier(ctx, r.db)

	query := statementSelect + `
		WHERE id = $1
	`

	st, err := scanStatement(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Statement{}, payroll.ErrStatementNotFound
		}
		return payroll.Statement{}, fmt.Errorf("failed to get salary statement: %w", err)
	}

	return st, nil
}

func (r *statementRepository) ListForEmployee(ctx context.Context, employeeID string) ([]payroll.Statement, error) {
	q := GetQuerier(ctx, r.db)

	query := statementSelect + `
		WHERE employee_id = $1
		ORDER BY month DESC, version DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary statements: %w", err)
	}
	defer rows.Close()

	var statements []payroll.Statement
	for rows.Next() {
		st, err := scanStatement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary statement: %w", err)
		}
		statements = append(statements, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate salary statements: %w", err)
	}

	return statements, nil
}

const statementSelect = `
	SELECT id, employee_id, month, gross_pay, regular_hours, overtime_hours,
		   paid_leave_days, unpaid_days, warnings, inputs_hash, version, created_at
	FROM salary_statements
`

func scanStatement(row pgx.Row) (payroll.Statement, error) {
	var (
		st       payroll.Statement
		month    string
		warnings []byte
	)
	if err := row.Scan(
		&st.ID, &st.EmployeeID, &month, &st.GrossPay, &st.RegularHours,
		&st.OvertimeHours, &st.PaidLeaveDays, &st.UnpaidDays,
		&warnings, &st.InputsHash, &st.Version, &st.CreatedAt,
	); err != nil {
		return payroll.Statement{}, err
	}

	parsed, err := payroll.ParseMonth(month)
	if err != nil {
		return payroll.Statement{}, err
	}
	st.Month = parsed

	if len(warnings) > 0 {
		if err := json.Unmarshal(warnings, &st.Warnings); err != nil {
			return payroll.Statement{}, fmt.Errorf("failed to unmarshal statement warnings: %w", err)
		}
	}

	return st, nil
}

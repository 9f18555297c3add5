package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bittarwork/altrohr-payroll/internal/domain/report"
	"github.com/bittarwork/altrohr-payroll/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type reportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.Repository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, rep report.Report) (report.Report, error) {
	q := GetQuerier(ctx, r.db)

	params, err := json.Marshal(rep.Params)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to marshal report params: %w", err)
	}
	refs, err := json.Marshal(rep.StatementRefs)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to marshal statement refs: %w", err)
	}
	summary, err := json.Marshal(rep.Summary)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to marshal report summary: %w", err)
	}
	warnings, err := json.Marshal(rep.Warnings)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to marshal report warnings: %w", err)
	}

	query := `
		INSERT INTO reports (id, category, params, generated_at, content_hash, statement_refs, summary, warnings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	created := rep
	err = q.QueryRow(ctx, query,
		uuid.NewString(), rep.Category, params, rep.GeneratedAt,
		rep.ContentHash, refs, summary, warnings,
	).Scan(&created.ID)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to create report: %w", err)
	}

	return created, nil
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (report.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := reportSelect + `
		WHERE id = $1
	`

	rep, err := scanReport(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return report.Report{}, report.ErrReportNotFound
		}
		return report.Report{}, fmt.Errorf("failed to get report: %w", err)
	}

	return rep, nil
}

func (r *reportRepository) GetByContentHash(ctx context.Context, hash string) (report.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := reportSelect + `
		WHERE content_hash = $1
	`

	rep, err := scanReport(q.QueryRow(ctx, query, hash))
	if err != nil {
		if err == pgx.ErrNoRows {
			return report.Report{}, report.ErrReportNotFound
		}
		return report.Report{}, fmt.Errorf("failed to get report by content hash: %w", err)
	}

	return rep, nil
}

func (r *reportRepository) List(ctx context.Context) ([]report.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := reportSelect + `
		ORDER BY generated_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []report.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}

	return reports, nil
}

const reportSelect = `
	SELECT id, category, params, generated_at, content_hash, statement_refs, summary, warnings
	FROM reports
`

func scanReport(row pgx.Row) (report.Report, error) {
	var (
		rep      report.Report
		params   []byte
		refs     []byte
		summary  []byte
		warnings []byte
	)
	if err := row.Scan(
		&rep.ID, &rep.Category, &params, &rep.GeneratedAt,
		&rep.ContentHash, &refs, &summary, &warnings,
	); err != nil {
		return report.Report{}, err
	}

	if err := json.Unmarshal(params, &rep.Params); err != nil {
		return report.Report{}, fmt.Errorf("failed to unmarshal report params: %w", err)
	}
	if err := json.Unmarshal(refs, &rep.StatementRefs); err != nil {
		return report.Report{}, fmt.Errorf("failed to unmarshal statement refs: %w", err)
	}
	if err := json.Unmarshal(summary, &rep.Summary); err != nil {
		return report.Report{}, fmt.Errorf("failed to unmarshal report summary: %w", err)
	}
	if len(warnings) > 0 {
		if err := json.Unmarshal(warnings, &rep.Warnings); err != nil {
			return report.Report{}, fmt.Errorf("failed to unmarshal report warnings: %w", err)
		}
	}

	return rep, nil
}

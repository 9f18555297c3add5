package report

import (
	"context"
)

// Repository persists generated reports, keyed by content hash for
// idempotent regeneration.
type Repository interface {
	Create(ctx context.Context, rep Report) (Report, error)
	GetByID(ctx context.Context, id string) (Report, error)

	// GetByContentHash returns the report previously generated from
	// identical inputs, or ErrReportNotFound.
	GetByContentHash(ctx context.Context, hash string) (Report, error)

	List(ctx context.Context) ([]Report, error)
}

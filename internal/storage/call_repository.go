package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dkruglov/newsimage/internal/model"
)

// CallStats summarizes recorded model calls for the admin stats endpoint.
type CallStats struct {
	Total       int64 `db:"total" json:"total"`
	Failed      int64 `db:"failed" json:"failed"`
	AvgDuration int64 `db:"avg_duration_ms" json:"avg_duration_ms"`
}

// CallRepository persists model-call audit records. Only the interface is
// exported; callers can hand the pipeline a nil repository to disable
// auditing entirely.
type CallRepository interface {
	Create(ctx context.Context, call *model.ModelCall) error
	CountByStage(ctx context.Context, stage string) (int64, error)
	Stats(ctx context.Context) (*CallStats, error)
}

type sqliteCallRepository struct {
	db *sqlx.DB
}

// NewCallRepository creates a SQLite-backed CallRepository.
func NewCallRepository(db *sqlx.DB) CallRepository {
	return &sqliteCallRepository{db: db}
}

func (r *sqliteCallRepository) Create(ctx context.Context, call *model.ModelCall) error {
	result, err := r.db.NamedExecContext(ctx, `
		INSERT INTO model_calls (stage, provider, model, target_url, success, duration_ms)
		VALUES (:stage, :provider, :model, :target_url, :success, :duration_ms)
	`, call)
	if err != nil {
		return fmt.Errorf("recording model call: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	call.ID = id
	return nil
}

func (r *sqliteCallRepository) CountByStage(ctx context.Context, stage string) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM model_calls WHERE stage = ?", stage)
	if err != nil {
		return 0, fmt.Errorf("counting calls for stage %s: %w", stage, err)
	}
	return count, nil
}

func (r *sqliteCallRepository) Stats(ctx context.Context) (*CallStats, error) {
	var stats CallStats
	err := r.db.GetContext(ctx, &stats, `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0) AS failed,
			COALESCE(CAST(AVG(duration_ms) AS INTEGER), 0) AS avg_duration_ms
		FROM model_calls
	`)
	if err != nil {
		return nil, fmt.Errorf("querying call stats: %w", err)
	}
	return &stats, nil
}

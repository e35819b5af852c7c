package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/newspool/newspool/pkg/domain"
)

// HealthRepository stores the append-only per-fetch health log
type HealthRepository struct {
	db *sqlx.DB
}

// healthCheckSQL represents a health check row
type healthCheckSQL struct {
	ID              int64     `db:"id"`
	SourceID        int64     `db:"source_id"`
	Status          string    `db:"status"`
	ResponseTimeMs  int64     `db:"response_time_ms"`
	ArticlesFetched int       `db:"articles_fetched"`
	ErrorMessage    string    `db:"error_message"`
	CheckedAt       time.Time `db:"checked_at"`
}

// NewHealthRepository creates a new health repository
func NewHealthRepository(db *sqlx.DB) *HealthRepository {
	return &HealthRepository{db: db}
}

// RecordHealthCheck appends one fetch outcome for a source
func (r *HealthRepository) RecordHealthCheck(ctx context.Context, rec *domain.HealthCheckRecord) error {
	query := `
		INSERT INTO health_checks (source_id, status, response_time_ms, articles_fetched, error_message)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		rec.SourceID, string(rec.Status), rec.ResponseTimeMs, rec.ArticlesFetched, rec.ErrorMessage)
	if err != nil {
		return fmt.Errorf("record health check: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}
	rec.ID = id
	return nil
}

// GetRecentHealthChecks returns the latest health checks for a source,
// newest first
func (r *HealthRepository) GetRecentHealthChecks(ctx context.Context, sourceID int64, limit int) ([]domain.HealthCheckRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT * FROM health_checks
		WHERE source_id = ?
		ORDER BY checked_at DESC, id DESC
		LIMIT ?
	`
	var rows []healthCheckSQL
	if err := r.db.SelectContext(ctx, &rows, query, sourceID, limit); err != nil {
		return nil, fmt.Errorf("get health checks: %w", err)
	}

	records := make([]domain.HealthCheckRecord, len(rows))
	for i, row := range rows {
		records[i] = domain.HealthCheckRecord{
			ID:              row.ID,
			SourceID:        row.SourceID,
			Status:          domain.HealthStatus(row.Status),
			ResponseTimeMs:  row.ResponseTimeMs,
			ArticlesFetched: row.ArticlesFetched,
			ErrorMessage:    row.ErrorMessage,
			CheckedAt:       row.CheckedAt,
		}
	}
	return records, nil
}

package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/newspool/newspool/pkg/domain"
)

// SourceRepository handles source-related database operations. It is the
// exclusive owner of source records; health outcomes are folded into the
// row once per source per cycle.
type SourceRepository struct {
	db *sqlx.DB
}

// sourceSQL represents a source row for SQL operations
type sourceSQL struct {
	ID                  int64         `db:"id"`
	Name                string        `db:"name"`
	URL                 string        `db:"url"`
	Type                string        `db:"type"`
	APIKey              string        `db:"api_key"`
	Headers             headersSQL    `db:"headers"`
	Selectors           selectorsSQL  `db:"selectors"`
	Enabled             bool          `db:"enabled"`
	Priority            int           `db:"priority"`
	QualityScore        float64       `db:"quality_score"`
	ConsecutiveFailures int           `db:"consecutive_failures"`
	LastFetched         sql.NullTime  `db:"last_fetched"`
	NextFetch           sql.NullTime  `db:"next_fetch"`
	FetchInterval       int64         `db:"fetch_interval"`
	ArticlesToday       int           `db:"articles_today"`
	ArticlesTodayDate   string        `db:"articles_today_date"`
	LastError           string        `db:"last_error"`
	CreatedAt           time.Time     `db:"created_at"`
	UpdatedAt           time.Time     `db:"updated_at"`
}

// headersSQL is a JSON object of header name/value pairs for SQL operations
type headersSQL map[string]string

// Value implements driver.Valuer for database storage
func (h headersSQL) Value() (driver.Value, error) {
	if h == nil {
		return "{}", nil
	}
	data, err := json.Marshal(h)
	return string(data), err
}

// Scan implements sql.Scanner for database retrieval
func (h *headersSQL) Scan(value interface{}) error {
	data, ok := sqlText(value)
	if !ok || data == "" || data == "{}" {
		*h = headersSQL{}
		return nil
	}
	return json.Unmarshal([]byte(data), h)
}

// selectorsSQL stores scraper selectors as JSON, empty string for none
type selectorsSQL struct {
	sel *domain.ScrapeSelectors
}

// Value implements driver.Valuer for database storage
func (s selectorsSQL) Value() (driver.Value, error) {
	if s.sel == nil {
		return "", nil
	}
	data, err := json.Marshal(s.sel)
	return string(data), err
}

// Scan implements sql.Scanner for database retrieval
func (s *selectorsSQL) Scan(value interface{}) error {
	data, ok := sqlText(value)
	if !ok || data == "" {
		s.sel = nil
		return nil
	}
	s.sel = &domain.ScrapeSelectors{}
	return json.Unmarshal([]byte(data), s.sel)
}

// sqlText converts a scanned value to a string
func sqlText(value interface{}) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case []byte:
		return string(v), true
	}
	return "", false
}

// NewSourceRepository creates a new source repository
func NewSourceRepository(db *sqlx.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

// CreateSource inserts a new source
func (r *SourceRepository) CreateSource(ctx context.Context, src *domain.Source) error {
	if src.FetchInterval == 0 {
		src.FetchInterval = 30 * time.Minute
	}

	sqlSrc := fromDomainSource(src)
	query := `
		INSERT INTO sources (name, url, type, api_key, headers, selectors, enabled, priority, fetch_interval)
		VALUES (:name, :url, :type, :api_key, :headers, :selectors, :enabled, :priority, :fetch_interval)
	`
	result, err := r.db.NamedExecContext(ctx, query, sqlSrc)
	if err != nil {
		return fmt.Errorf("create source: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}

	src.ID = id
	return nil
}

// GetSource retrieves a source by ID
func (r *SourceRepository) GetSource(ctx context.Context, id int64) (*domain.Source, error) {
	var sqlSrc sourceSQL
	err := r.db.GetContext(ctx, &sqlSrc, "SELECT * FROM sources WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("source %d not found", id)
		}
		return nil, fmt.Errorf("get source: %w", err)
	}
	return toDomainSource(&sqlSrc), nil
}

// GetSources retrieves sources, optionally only enabled ones
func (r *SourceRepository) GetSources(ctx context.Context, enabledOnly bool) ([]domain.Source, error) {
	query := "SELECT * FROM sources"
	if enabledOnly {
		query += " WHERE enabled = 1"
	}
	query += " ORDER BY priority DESC, name"

	var sqlSrcs []sourceSQL
	if err := r.db.SelectContext(ctx, &sqlSrcs, query); err != nil {
		return nil, fmt.Errorf("get sources: %w", err)
	}
	return toDomainSources(sqlSrcs), nil
}

// GetSourcesReadyForFetch retrieves enabled sources that are due for a fetch
// and have not exceeded the consecutive-failure threshold
func (r *SourceRepository) GetSourcesReadyForFetch(ctx context.Context, maxFailures int) ([]domain.Source, error) {
	query := `
		SELECT * FROM sources
		WHERE enabled = 1
		  AND consecutive_failures < ?
		  AND (next_fetch IS NULL OR next_fetch <= datetime('now'))
		ORDER BY priority DESC, next_fetch ASC
	`
	var sqlSrcs []sourceSQL
	if err := r.db.SelectContext(ctx, &sqlSrcs, query, maxFailures); err != nil {
		return nil, fmt.Errorf("get sources ready for fetch: %w", err)
	}
	return toDomainSources(sqlSrcs), nil
}

// UpdateSourceFetched folds a successful fetch back into the source row:
// failure count resets, the daily article counter rolls at UTC midnight,
// the quality score creeps up and the next fetch is scheduled one interval
// out. Dates are computed in SQL to keep time handling on the SQLite side.
func (r *SourceRepository) UpdateSourceFetched(ctx context.Context, sourceID int64, articles int) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		query := `
			UPDATE sources
			SET consecutive_failures = 0,
			    last_error = '',
			    last_fetched = datetime('now'),
			    next_fetch = datetime('now', '+' || fetch_interval || ' seconds'),
			    quality_score = MIN(100, quality_score + 1),
			    articles_today = CASE WHEN articles_today_date = date('now') THEN articles_today + ? ELSE ? END,
			    articles_today_date = date('now'),
			    updated_at = datetime('now')
			WHERE id = ?
		`
		_, err := r.db.ExecContext(ctx, query, articles, articles, sourceID)
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("update source fetched: %w", err)}
		}
		return nil
	})
}

// UpdateSourceError folds a failed fetch back into the source row: failure
// count and error message are recorded, the quality score drops and the next
// fetch is pushed out proportionally to the failure streak.
func (r *SourceRepository) UpdateSourceError(ctx context.Context, sourceID int64, errMsg string) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		query := `
			UPDATE sources
			SET consecutive_failures = consecutive_failures + 1,
			    last_error = ?,
			    last_fetched = datetime('now'),
			    quality_score = MAX(0, quality_score - 5),
			    next_fetch = datetime('now', '+' || ((consecutive_failures + 1) * fetch_interval) || ' seconds'),
			    updated_at = datetime('now')
			WHERE id = ?
		`
		_, err := r.db.ExecContext(ctx, query, errMsg, sourceID)
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("update source error: %w", err)}
		}
		return nil
	})
}

// SetSourceActive soft-enables or soft-disables a source. Sources are never
// hard-deleted while referenced by stored articles.
func (r *SourceRepository) SetSourceActive(ctx context.Context, sourceID int64, active bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE sources SET enabled = ?, updated_at = datetime('now') WHERE id = ?", active, sourceID)
	if err != nil {
		return fmt.Errorf("set source active: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("source %d not found", sourceID)
	}
	return nil
}

// fromDomainSource converts a domain source to its SQL form
func fromDomainSource(src *domain.Source) *sourceSQL {
	srcType := string(src.Type)
	if srcType == "" {
		srcType = string(domain.SourceRSS)
	}
	return &sourceSQL{
		ID:            src.ID,
		Name:          src.Name,
		URL:           src.URL,
		Type:          srcType,
		APIKey:        src.APIKey,
		Headers:       src.Headers,
		Selectors:     selectorsSQL{sel: src.Selectors},
		Enabled:       src.Enabled,
		Priority:      src.Priority,
		FetchInterval: int64(src.FetchInterval / time.Second),
	}
}

// toDomainSource converts a SQL row to a domain source
func toDomainSource(sqlSrc *sourceSQL) *domain.Source {
	src := &domain.Source{
		ID:                  sqlSrc.ID,
		Name:                sqlSrc.Name,
		URL:                 sqlSrc.URL,
		Type:                domain.SourceType(sqlSrc.Type),
		APIKey:              sqlSrc.APIKey,
		Headers:             sqlSrc.Headers,
		Selectors:           sqlSrc.Selectors.sel,
		Enabled:             sqlSrc.Enabled,
		Priority:            sqlSrc.Priority,
		QualityScore:        sqlSrc.QualityScore,
		ConsecutiveFailures: sqlSrc.ConsecutiveFailures,
		FetchInterval:       time.Duration(sqlSrc.FetchInterval) * time.Second,
		ArticlesToday:       sqlSrc.ArticlesToday,
		LastError:           sqlSrc.LastError,
		CreatedAt:           sqlSrc.CreatedAt,
		UpdatedAt:           sqlSrc.UpdatedAt,
	}
	if sqlSrc.LastFetched.Valid {
		src.LastFetchedAt = sqlSrc.LastFetched.Time
	}
	if sqlSrc.NextFetch.Valid {
		src.NextFetchAt = sqlSrc.NextFetch.Time
	}
	return src
}

func toDomainSources(sqlSrcs []sourceSQL) []domain.Source {
	sources := make([]domain.Source, len(sqlSrcs))
	for i := range sqlSrcs {
		sources[i] = *toDomainSource(&sqlSrcs[i])
	}
	return sources
}

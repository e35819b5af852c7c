package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/newspool/newspool/pkg/dedup"
	"github.com/newspool/newspool/pkg/domain"
)

// ArticleRepository handles article-related database operations
type ArticleRepository struct {
	db *sqlx.DB
}

// articleSQL represents an article row joined with its source name
type articleSQL struct {
	ID            int64        `db:"id"`
	SourceID      int64        `db:"source_id"`
	SourceName    string       `db:"source_name"`
	Title         string       `db:"title"`
	URL           string       `db:"url"`
	NormalizedURL string       `db:"normalized_url"`
	Content       string       `db:"content"`
	Summary       string       `db:"summary"`
	Author        string       `db:"author"`
	ImageURL      string       `db:"image_url"`
	Published     sql.NullTime `db:"published"`
	QualityScore  int          `db:"quality_score"`
	CreatedAt     time.Time    `db:"created_at"`
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// InsertArticles stores a batch of articles in one transaction and returns
// how many were actually inserted. Articles whose normalized URL already
// exists in the corpus are silently skipped, which makes re-ingestion of a
// feed idempotent across cycles.
func (r *ArticleRepository) InsertArticles(ctx context.Context, articles []domain.RawArticle) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	inserted := 0
	err := retrier.Do(ctx, func() error {
		inserted = 0
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("begin transaction: %w", err)}
		}
		defer func() { _ = tx.Rollback() }()

		query := `
			INSERT OR IGNORE INTO articles
				(source_id, title, url, normalized_url, content, summary, author, image_url, published, quality_score, metadata)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		for i := range articles {
			a := &articles[i]
			var published interface{}
			if !a.PublishedAt.IsZero() {
				published = a.PublishedAt.UTC()
			}
			metadata := "{}"
			if len(a.Metadata) > 0 {
				data, merr := json.Marshal(a.Metadata)
				if merr != nil {
					return &criticalError{err: fmt.Errorf("marshal metadata: %w", merr)}
				}
				metadata = string(data)
			}

			result, err := tx.ExecContext(ctx, query,
				a.SourceID, a.Title, a.URL, dedup.NormalizeURL(a.URL),
				a.Content, a.Summary, a.Author, a.ImageURL, published, a.QualityScore, metadata)
			if err != nil {
				if isLockError(err) {
					return err
				}
				return &criticalError{err: fmt.Errorf("insert article %q: %w", a.URL, err)}
			}

			affected, err := result.RowsAffected()
			if err != nil {
				return &criticalError{err: fmt.Errorf("get rows affected: %w", err)}
			}
			inserted += int(affected)
		}

		if err := tx.Commit(); err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("commit articles: %w", err)}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// GetArticle retrieves a single article by ID
func (r *ArticleRepository) GetArticle(ctx context.Context, id int64) (*domain.Article, error) {
	query := `
		SELECT a.id, a.source_id, s.name AS source_name, a.title, a.url, a.normalized_url,
		       a.content, a.summary, a.author, a.image_url, a.published, a.quality_score, a.created_at
		FROM articles a
		JOIN sources s ON s.id = a.source_id
		WHERE a.id = ?
	`
	var sqlArt articleSQL
	if err := r.db.GetContext(ctx, &sqlArt, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("article %d not found", id)
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	article := toDomainArticle(&sqlArt)
	return &article, nil
}

// GetArticles retrieves articles matching the filter, newest first
func (r *ArticleRepository) GetArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	builder := squirrel.Select(
		"a.id", "a.source_id", "s.name AS source_name", "a.title", "a.url", "a.normalized_url",
		"a.content", "a.summary", "a.author", "a.image_url", "a.published", "a.quality_score", "a.created_at").
		From("articles a").
		Join("sources s ON s.id = a.source_id").
		OrderBy("a.published DESC", "a.id DESC")

	if filter.SourceID > 0 {
		builder = builder.Where(squirrel.Eq{"a.source_id": filter.SourceID})
	}
	if !filter.Since.IsZero() {
		builder = builder.Where(squirrel.GtOrEq{"a.published": filter.Since.UTC()})
	}
	if filter.MinScore > 0 {
		builder = builder.Where(squirrel.GtOrEq{"a.quality_score": filter.MinScore})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.Like{"a.title": pattern},
			squirrel.Like{"a.summary": pattern},
		})
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	builder = builder.Limit(uint64(limit)) //nolint:gosec // limit is validated positive
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset)) //nolint:gosec // offset is validated positive
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build articles query: %w", err)
	}

	var sqlArts []articleSQL
	if err := r.db.SelectContext(ctx, &sqlArts, query, args...); err != nil {
		return nil, fmt.Errorf("get articles: %w", err)
	}

	articles := make([]domain.Article, len(sqlArts))
	for i := range sqlArts {
		articles[i] = toDomainArticle(&sqlArts[i])
	}
	return articles, nil
}

// CountArticles returns the total number of stored articles
func (r *ArticleRepository) CountArticles(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM articles"); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

// toDomainArticle converts a SQL row to a domain article
func toDomainArticle(sqlArt *articleSQL) domain.Article {
	article := domain.Article{
		ID:            sqlArt.ID,
		SourceID:      sqlArt.SourceID,
		SourceName:    sqlArt.SourceName,
		Title:         sqlArt.Title,
		URL:           sqlArt.URL,
		NormalizedURL: sqlArt.NormalizedURL,
		Content:       sqlArt.Content,
		Summary:       sqlArt.Summary,
		Author:        sqlArt.Author,
		ImageURL:      sqlArt.ImageURL,
		QualityScore:  sqlArt.QualityScore,
		CreatedAt:     sqlArt.CreatedAt,
	}
	if sqlArt.Published.Valid {
		article.PublishedAt = sqlArt.Published.Time
	}
	return article
}

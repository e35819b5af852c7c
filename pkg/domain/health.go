package domain

import "time"

// HealthStatus represents the outcome class of one fetch attempt
type HealthStatus string

// health check statuses
const (
	HealthHealthy HealthStatus = "healthy"
	HealthWarning HealthStatus = "warning"
	HealthError   HealthStatus = "error"
)

// HealthCheckRecord is the append-only outcome of one fetch attempt for one
// source. It also folds back into the source's consecutive_failures and
// quality_score counters.
type HealthCheckRecord struct {
	ID              int64
	SourceID        int64
	Status          HealthStatus
	ResponseTimeMs  int64
	ArticlesFetched int
	ErrorMessage    string
	CheckedAt       time.Time
}

// SourceError describes one failed source within a cycle
type SourceError struct {
	SourceID   int64  `json:"source_id"`
	SourceName string `json:"source_name"`
	Error      string `json:"error"`
}

// FetchSummary is the contract surfaced to operators after one full
// ingestion cycle across all ready sources.
type FetchSummary struct {
	CycleID           string        `json:"cycle_id"`
	TotalArticles     int           `json:"total_articles"`
	SuccessfulSources int           `json:"successful_sources"`
	FailedSources     int           `json:"failed_sources"`
	Errors            []SourceError `json:"errors"`
	StartedAt         time.Time     `json:"started_at"`
	Elapsed           time.Duration `json:"elapsed"`
}

// SourceTestResult is returned to an admin triggering "fetch now" on a single
// source. It never carries a stack trace, only the error message.
type SourceTestResult struct {
	SourceID        int64        `json:"source_id"`
	Success         bool         `json:"success"`
	Status          HealthStatus `json:"status"`
	ResponseTimeMs  int64        `json:"response_time_ms"`
	ArticlesFetched int          `json:"articles_fetched"`
	ErrorMessage    string       `json:"error_message,omitempty"`
}

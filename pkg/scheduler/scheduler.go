// Package scheduler drives the periodic ingestion cycle: it selects the
// sources due for a fetch, runs them through fetch, validation and
// deduplication in bounded batches, stores the survivors and folds the
// per-source outcome back into source health.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/newspool/newspool/pkg/domain"
)

//go:generate moq -out mocks/source_manager.go -pkg mocks -skip-ensure -fmt goimports . SourceManager
//go:generate moq -out mocks/article_manager.go -pkg mocks -skip-ensure -fmt goimports . ArticleManager
//go:generate moq -out mocks/health_manager.go -pkg mocks -skip-ensure -fmt goimports . HealthManager
//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/validator.go -pkg mocks -skip-ensure -fmt goimports . Validator
//go:generate moq -out mocks/deduper.go -pkg mocks -skip-ensure -fmt goimports . Deduper
//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor

// SourceManager interface for source operations
type SourceManager interface {
	GetSource(ctx context.Context, id int64) (*domain.Source, error)
	GetSourcesReadyForFetch(ctx context.Context, maxFailures int) ([]domain.Source, error)
	UpdateSourceFetched(ctx context.Context, sourceID int64, articles int) error
	UpdateSourceError(ctx context.Context, sourceID int64, errMsg string) error
}

// ArticleManager interface for article storage
type ArticleManager interface {
	InsertArticles(ctx context.Context, articles []domain.RawArticle) (int, error)
}

// HealthManager interface for the health check log
type HealthManager interface {
	RecordHealthCheck(ctx context.Context, rec *domain.HealthCheckRecord) error
}

// Fetcher interface for retrieving and parsing one source
type Fetcher interface {
	Fetch(ctx context.Context, src *domain.Source) ([]domain.RawArticle, error)
}

// Validator interface for article quality scoring
type Validator interface {
	Validate(article *domain.RawArticle) domain.QualityAssessment
}

// Deduper interface for within-batch duplicate removal
type Deduper interface {
	Dedupe(articles []domain.RawArticle) []domain.RawArticle
}

// Extractor interface for full-text content extraction
type Extractor interface {
	Extract(ctx context.Context, urlStr string) (string, error)
}

// Params holds scheduler dependencies and configuration
type Params struct {
	SourceManager  SourceManager
	ArticleManager ArticleManager
	HealthManager  HealthManager
	Fetcher        Fetcher
	Validator      Validator
	Deduper        Deduper
	Extractor      Extractor // optional, nil disables content enrichment

	UpdateInterval   time.Duration
	Concurrency      int
	MaxFailures      int
	ExtractThreshold int // enrich articles whose content is shorter than this
}

// Scheduler manages periodic ingestion cycles
type Scheduler struct {
	sources   SourceManager
	articles  ArticleManager
	health    HealthManager
	fetcher   Fetcher
	validator Validator
	deduper   Deduper
	extractor Extractor

	updateInterval   time.Duration
	concurrency      int
	maxFailures      int
	extractThreshold int

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewScheduler creates a new scheduler instance
func NewScheduler(params Params) *Scheduler {
	if params.UpdateInterval == 0 {
		params.UpdateInterval = 30 * time.Minute
	}
	if params.Concurrency == 0 {
		params.Concurrency = 5
	}
	if params.MaxFailures == 0 {
		params.MaxFailures = 10
	}
	if params.ExtractThreshold == 0 {
		params.ExtractThreshold = 100
	}

	return &Scheduler{
		sources:          params.SourceManager,
		articles:         params.ArticleManager,
		health:           params.HealthManager,
		fetcher:          params.Fetcher,
		validator:        params.Validator,
		deduper:          params.Deduper,
		extractor:        params.Extractor,
		updateInterval:   params.UpdateInterval,
		concurrency:      params.Concurrency,
		maxFailures:      params.MaxFailures,
		extractThreshold: params.ExtractThreshold,
	}
}

// Start begins the periodic ingestion loop. The first cycle runs
// immediately, subsequent cycles run one ticker interval apart. Cycles
// never overlap, a slow cycle simply delays the next tick.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.ingestWorker(ctx)

	lgr.Printf("[INFO] scheduler started with update interval %v, concurrency %d", s.updateInterval, s.concurrency)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// ingestWorker runs ingestion cycles until the context is canceled
func (s *Scheduler) ingestWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	if _, err := s.FetchAll(ctx); err != nil {
		lgr.Printf("[ERROR] ingestion cycle failed: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.FetchAll(ctx); err != nil {
				lgr.Printf("[ERROR] ingestion cycle failed: %v", err)
			}
		}
	}
}

// FetchAll runs one full ingestion cycle over all sources due for a fetch.
// Sources are processed in batches of at most Concurrency, fully parallel
// within a batch and strictly sequential between batches, so a burst of slow
// sources cannot monopolize the fetch pool. One failing source never aborts
// the cycle.
func (s *Scheduler) FetchAll(ctx context.Context) (*domain.FetchSummary, error) {
	summary := &domain.FetchSummary{
		CycleID:   uuid.New().String(),
		StartedAt: time.Now(),
	}

	sources, err := s.sources.GetSourcesReadyForFetch(ctx, s.maxFailures)
	if err != nil {
		return nil, fmt.Errorf("get sources ready for fetch: %w", err)
	}

	lgr.Printf("[INFO] cycle %s: fetching %d sources", summary.CycleID, len(sources))

	outcomes := make([]sourceOutcome, len(sources))
	for start := 0; start < len(sources); start += s.concurrency {
		end := start + s.concurrency
		if end > len(sources) {
			end = len(sources)
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				outcomes[i] = s.processSource(gctx, &sources[i])
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			lgr.Printf("[ERROR] cycle %s: batch error: %v", summary.CycleID, err)
		}
	}

	for i := range sources {
		o := &outcomes[i]
		if o.status == domain.HealthError {
			summary.FailedSources++
			summary.Errors = append(summary.Errors, domain.SourceError{
				SourceID:   sources[i].ID,
				SourceName: sources[i].DisplayName(),
				Error:      o.errMsg,
			})
			continue
		}
		summary.SuccessfulSources++
		summary.TotalArticles += o.inserted
	}

	summary.Elapsed = time.Since(summary.StartedAt)
	lgr.Printf("[INFO] cycle %s: %d articles from %d sources (%d failed) in %v",
		summary.CycleID, summary.TotalArticles, summary.SuccessfulSources, summary.FailedSources, summary.Elapsed)
	return summary, nil
}

// FetchSourceNow triggers an immediate fetch of a single source, outside the
// regular cycle, and reports the outcome for operator diagnosis
func (s *Scheduler) FetchSourceNow(ctx context.Context, sourceID int64) (*domain.SourceTestResult, error) {
	lgr.Printf("[DEBUG] triggering immediate fetch for source %d", sourceID)
	src, err := s.sources.GetSource(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("get source %d: %w", sourceID, err)
	}

	outcome := s.processSource(ctx, src)
	return &domain.SourceTestResult{
		SourceID:        sourceID,
		Success:         outcome.status != domain.HealthError,
		Status:          outcome.status,
		ResponseTimeMs:  outcome.responseTimeMs,
		ArticlesFetched: outcome.fetched,
		ErrorMessage:    outcome.errMsg,
	}, nil
}

// sourceOutcome is the result of processing one source in a cycle
type sourceOutcome struct {
	status         domain.HealthStatus
	responseTimeMs int64
	fetched        int
	inserted       int
	errMsg         string
}

// processSource runs one source through the full pipeline: fetch, validate,
// dedupe, optionally enrich, store. The outcome is recorded in the health
// log and folded into the source row regardless of success or failure.
func (s *Scheduler) processSource(ctx context.Context, src *domain.Source) sourceOutcome {
	start := time.Now()

	articles, err := s.fetcher.Fetch(ctx, src)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		lgr.Printf("[WARN] failed to fetch source %s: %v", src.DisplayName(), err)
		return s.recordFailure(ctx, src, elapsed, 0, err.Error())
	}

	fetched := len(articles)
	valid := articles[:0]
	for i := range articles {
		assessment := s.validator.Validate(&articles[i])
		if !assessment.IsValid {
			lgr.Printf("[DEBUG] source %s: rejected %q (score %d): %v",
				src.DisplayName(), articles[i].Title, assessment.Score, assessment.Issues)
			continue
		}
		articles[i].QualityScore = assessment.Score
		valid = append(valid, articles[i])
	}

	unique := s.deduper.Dedupe(valid)
	s.enrich(ctx, src, unique)

	inserted, err := s.articles.InsertArticles(ctx, unique)
	if err != nil {
		lgr.Printf("[WARN] failed to store articles for source %s: %v", src.DisplayName(), err)
		return s.recordFailure(ctx, src, elapsed, fetched, "store: "+err.Error())
	}

	// fetched but nothing made it through is worth flagging, it usually
	// means the source degraded into stubs or repeats
	status := domain.HealthHealthy
	if fetched > 0 && inserted == 0 {
		status = domain.HealthWarning
	}

	if err := s.sources.UpdateSourceFetched(ctx, src.ID, inserted); err != nil {
		lgr.Printf("[WARN] failed to update source %s after fetch: %v", src.DisplayName(), err)
	}
	s.recordHealth(ctx, src, status, elapsed, fetched, "")

	lgr.Printf("[INFO] source %s: %d fetched, %d valid, %d stored", src.DisplayName(), fetched, len(unique), inserted)
	return sourceOutcome{status: status, responseTimeMs: elapsed, fetched: fetched, inserted: inserted}
}

// recordFailure updates the source error counters and health log for a
// failed fetch or store
func (s *Scheduler) recordFailure(ctx context.Context, src *domain.Source, elapsed int64, fetched int, errMsg string) sourceOutcome {
	if err := s.sources.UpdateSourceError(ctx, src.ID, errMsg); err != nil {
		lgr.Printf("[WARN] failed to update error status for source %s: %v", src.DisplayName(), err)
	}
	s.recordHealth(ctx, src, domain.HealthError, elapsed, fetched, errMsg)
	return sourceOutcome{status: domain.HealthError, responseTimeMs: elapsed, fetched: fetched, errMsg: errMsg}
}

// recordHealth appends one outcome to the health log
func (s *Scheduler) recordHealth(ctx context.Context, src *domain.Source, status domain.HealthStatus, elapsed int64, fetched int, errMsg string) {
	rec := &domain.HealthCheckRecord{
		SourceID:        src.ID,
		Status:          status,
		ResponseTimeMs:  elapsed,
		ArticlesFetched: fetched,
		ErrorMessage:    errMsg,
		CheckedAt:       time.Now(),
	}
	if err := s.health.RecordHealthCheck(ctx, rec); err != nil {
		lgr.Printf("[WARN] failed to record health check for source %s: %v", src.DisplayName(), err)
	}
}

// enrich replaces stub content with extracted full text where an extractor
// is configured. Extraction failures are not fatal, the stub stays.
func (s *Scheduler) enrich(ctx context.Context, src *domain.Source, articles []domain.RawArticle) {
	if s.extractor == nil {
		return
	}
	for i := range articles {
		if len(articles[i].Content) >= s.extractThreshold {
			continue
		}
		text, err := s.extractor.Extract(ctx, articles[i].URL)
		if err != nil {
			lgr.Printf("[DEBUG] source %s: extraction failed for %s: %v", src.DisplayName(), articles[i].URL, err)
			continue
		}
		articles[i].Content = text
	}
}

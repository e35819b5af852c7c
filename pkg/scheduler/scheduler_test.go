package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newspool/newspool/pkg/domain"
	"github.com/newspool/newspool/pkg/scheduler/mocks"
)

// testDeps builds a scheduler with passthrough mocks: every article is
// valid, dedup keeps everything, every insert succeeds
func testDeps() (*mocks.SourceManagerMock, *mocks.ArticleManagerMock, *mocks.HealthManagerMock, *mocks.FetcherMock, Params) {
	sourceManager := &mocks.SourceManagerMock{
		UpdateSourceFetchedFunc: func(ctx context.Context, sourceID int64, articles int) error { return nil },
		UpdateSourceErrorFunc:   func(ctx context.Context, sourceID int64, errMsg string) error { return nil },
	}
	articleManager := &mocks.ArticleManagerMock{
		InsertArticlesFunc: func(ctx context.Context, articles []domain.RawArticle) (int, error) {
			return len(articles), nil
		},
	}
	healthManager := &mocks.HealthManagerMock{
		RecordHealthCheckFunc: func(ctx context.Context, rec *domain.HealthCheckRecord) error { return nil },
	}
	fetcher := &mocks.FetcherMock{}
	validator := &mocks.ValidatorMock{
		ValidateFunc: func(article *domain.RawArticle) domain.QualityAssessment {
			return domain.QualityAssessment{Score: 80, IsValid: true}
		},
	}
	deduper := &mocks.DeduperMock{
		DedupeFunc: func(articles []domain.RawArticle) []domain.RawArticle { return articles },
	}

	params := Params{
		SourceManager:  sourceManager,
		ArticleManager: articleManager,
		HealthManager:  healthManager,
		Fetcher:        fetcher,
		Validator:      validator,
		Deduper:        deduper,
		UpdateInterval: time.Hour, // long interval to keep the ticker quiet in tests
		Concurrency:    5,
		MaxFailures:    10,
	}
	return sourceManager, articleManager, healthManager, fetcher, params
}

func makeSources(n int) []domain.Source {
	sources := make([]domain.Source, n)
	for i := range sources {
		sources[i] = domain.Source{
			ID:   int64(i + 1),
			Name: fmt.Sprintf("source-%d", i+1),
			URL:  fmt.Sprintf("https://s%d.example.com/rss", i+1),
		}
	}
	return sources
}

func TestNewScheduler_Defaults(t *testing.T) {
	_, _, _, _, params := testDeps()
	params.UpdateInterval = 0
	params.Concurrency = 0
	params.MaxFailures = 0
	params.ExtractThreshold = 0

	s := NewScheduler(params)
	assert.Equal(t, 30*time.Minute, s.updateInterval)
	assert.Equal(t, 5, s.concurrency)
	assert.Equal(t, 10, s.maxFailures)
	assert.Equal(t, 100, s.extractThreshold)
}

func TestFetchAll_MixedOutcomes(t *testing.T) {
	sourceManager, _, healthManager, fetcher, params := testDeps()

	sourceManager.GetSourcesReadyForFetchFunc = func(ctx context.Context, maxFailures int) ([]domain.Source, error) {
		return makeSources(7), nil
	}
	fetcher.FetchFunc = func(ctx context.Context, src *domain.Source) ([]domain.RawArticle, error) {
		if src.ID == 3 {
			return nil, errors.New("connection refused")
		}
		return []domain.RawArticle{
			{SourceID: src.ID, Title: "story one from " + src.Name, URL: src.URL + "/1"},
			{SourceID: src.ID, Title: "story two from " + src.Name, URL: src.URL + "/2"},
		}, nil
	}

	s := NewScheduler(params)
	summary, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, summary.CycleID)
	assert.Equal(t, 6, summary.SuccessfulSources)
	assert.Equal(t, 1, summary.FailedSources)
	assert.Equal(t, 12, summary.TotalArticles)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, int64(3), summary.Errors[0].SourceID)
	assert.Equal(t, "source-3", summary.Errors[0].SourceName)
	assert.Equal(t, "connection refused", summary.Errors[0].Error)

	// the failing source gets an error update, the rest get fetched updates
	require.Len(t, sourceManager.UpdateSourceErrorCalls(), 1)
	assert.Equal(t, int64(3), sourceManager.UpdateSourceErrorCalls()[0].SourceID)
	assert.Len(t, sourceManager.UpdateSourceFetchedCalls(), 6)

	// every source gets exactly one health record
	assert.Len(t, healthManager.RecordHealthCheckCalls(), 7)
	errRecords := 0
	for _, call := range healthManager.RecordHealthCheckCalls() {
		if call.Rec.Status == domain.HealthError {
			errRecords++
			assert.Equal(t, "connection refused", call.Rec.ErrorMessage)
		}
	}
	assert.Equal(t, 1, errRecords)
}

func TestFetchAll_BatchConcurrency(t *testing.T) {
	sourceManager, _, _, fetcher, params := testDeps()
	params.Concurrency = 5

	sourceManager.GetSourcesReadyForFetchFunc = func(ctx context.Context, maxFailures int) ([]domain.Source, error) {
		return makeSources(12), nil
	}

	var current, peak int32
	fetcher.FetchFunc = func(ctx context.Context, src *domain.Source) ([]domain.RawArticle, error) {
		n := atomic.AddInt32(&current, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&current, -1)
		return []domain.RawArticle{{SourceID: src.ID, Title: "t", URL: src.URL + "/1"}}, nil
	}

	s := NewScheduler(params)
	summary, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12, summary.SuccessfulSources)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(5), "no more than one batch in flight")
	assert.Len(t, fetcher.FetchCalls(), 12)
}

func TestFetchAll_RejectsInvalidBeforeDedup(t *testing.T) {
	sourceManager, articleManager, _, fetcher, params := testDeps()

	sourceManager.GetSourcesReadyForFetchFunc = func(ctx context.Context, maxFailures int) ([]domain.Source, error) {
		return makeSources(1), nil
	}
	fetcher.FetchFunc = func(ctx context.Context, src *domain.Source) ([]domain.RawArticle, error) {
		return []domain.RawArticle{
			{SourceID: src.ID, Title: "good enough article title", URL: src.URL + "/1"},
			{SourceID: src.ID, Title: "spam", URL: src.URL + "/2"},
		}, nil
	}

	deduper := &mocks.DeduperMock{
		DedupeFunc: func(articles []domain.RawArticle) []domain.RawArticle { return articles },
	}
	params.Deduper = deduper
	params.Validator = &mocks.ValidatorMock{
		ValidateFunc: func(article *domain.RawArticle) domain.QualityAssessment {
			if article.Title == "spam" {
				return domain.QualityAssessment{Score: 20, IsValid: false, Issues: []string{"title too short"}}
			}
			return domain.QualityAssessment{Score: 75, IsValid: true}
		},
	}

	s := NewScheduler(params)
	summary, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalArticles)

	// only the valid article reaches dedup and storage, with its score set
	require.Len(t, deduper.DedupeCalls(), 1)
	require.Len(t, deduper.DedupeCalls()[0].Articles, 1)
	assert.Equal(t, 75, deduper.DedupeCalls()[0].Articles[0].QualityScore)
	require.Len(t, articleManager.InsertArticlesCalls(), 1)
	require.Len(t, articleManager.InsertArticlesCalls()[0].Articles, 1)
}

func TestFetchAll_StoreFailure(t *testing.T) {
	sourceManager, articleManager, healthManager, fetcher, params := testDeps()

	sourceManager.GetSourcesReadyForFetchFunc = func(ctx context.Context, maxFailures int) ([]domain.Source, error) {
		return makeSources(1), nil
	}
	fetcher.FetchFunc = func(ctx context.Context, src *domain.Source) ([]domain.RawArticle, error) {
		return []domain.RawArticle{{SourceID: src.ID, Title: "t", URL: src.URL + "/1"}}, nil
	}
	articleManager.InsertArticlesFunc = func(ctx context.Context, articles []domain.RawArticle) (int, error) {
		return 0, errors.New("database is locked")
	}

	s := NewScheduler(params)
	summary, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.SuccessfulSources)
	assert.Equal(t, 1, summary.FailedSources)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, "store: database is locked", summary.Errors[0].Error)

	require.Len(t, sourceManager.UpdateSourceErrorCalls(), 1)
	assert.Empty(t, sourceManager.UpdateSourceFetchedCalls())
	require.Len(t, healthManager.RecordHealthCheckCalls(), 1)
	assert.Equal(t, domain.HealthError, healthManager.RecordHealthCheckCalls()[0].Rec.Status)
}

func TestFetchAll_WarningWhenNothingStored(t *testing.T) {
	sourceManager, articleManager, healthManager, fetcher, params := testDeps()

	sourceManager.GetSourcesReadyForFetchFunc = func(ctx context.Context, maxFailures int) ([]domain.Source, error) {
		return makeSources(1), nil
	}
	fetcher.FetchFunc = func(ctx context.Context, src *domain.Source) ([]domain.RawArticle, error) {
		return []domain.RawArticle{{SourceID: src.ID, Title: "seen before", URL: src.URL + "/1"}}, nil
	}
	// everything fetched was already in the corpus
	articleManager.InsertArticlesFunc = func(ctx context.Context, articles []domain.RawArticle) (int, error) {
		return 0, nil
	}

	s := NewScheduler(params)
	summary, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	// a warning source still counts as successful, just with zero articles
	assert.Equal(t, 1, summary.SuccessfulSources)
	assert.Equal(t, 0, summary.FailedSources)
	assert.Equal(t, 0, summary.TotalArticles)

	require.Len(t, healthManager.RecordHealthCheckCalls(), 1)
	assert.Equal(t, domain.HealthWarning, healthManager.RecordHealthCheckCalls()[0].Rec.Status)
	require.Len(t, sourceManager.UpdateSourceFetchedCalls(), 1)
	assert.Equal(t, 0, sourceManager.UpdateSourceFetchedCalls()[0].Articles)
}

func TestFetchAll_EnrichesShortContent(t *testing.T) {
	sourceManager, articleManager, _, fetcher, params := testDeps()
	params.ExtractThreshold = 100

	sourceManager.GetSourcesReadyForFetchFunc = func(ctx context.Context, maxFailures int) ([]domain.Source, error) {
		return makeSources(1), nil
	}
	longContent := "already has a full body " + strings.Repeat("x", 200)
	fetcher.FetchFunc = func(ctx context.Context, src *domain.Source) ([]domain.RawArticle, error) {
		return []domain.RawArticle{
			{SourceID: src.ID, Title: "stub", URL: src.URL + "/stub", Content: "short"},
			{SourceID: src.ID, Title: "full", URL: src.URL + "/full", Content: longContent},
			{SourceID: src.ID, Title: "broken", URL: src.URL + "/broken", Content: "short"},
		}, nil
	}
	extractor := &mocks.ExtractorMock{
		ExtractFunc: func(ctx context.Context, urlStr string) (string, error) {
			if urlStr == "https://s1.example.com/rss/broken" {
				return "", errors.New("paywall")
			}
			return "extracted full text", nil
		},
	}
	params.Extractor = extractor

	s := NewScheduler(params)
	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	// only the two stubs hit the extractor, the full article is untouched
	assert.Len(t, extractor.ExtractCalls(), 2)

	require.Len(t, articleManager.InsertArticlesCalls(), 1)
	stored := articleManager.InsertArticlesCalls()[0].Articles
	require.Len(t, stored, 3)
	assert.Equal(t, "extracted full text", stored[0].Content)
	assert.Equal(t, longContent, stored[1].Content)
	assert.Equal(t, "short", stored[2].Content, "failed extraction keeps the stub")
}

func TestFetchAll_ListError(t *testing.T) {
	sourceManager, _, _, _, params := testDeps()
	sourceManager.GetSourcesReadyForFetchFunc = func(ctx context.Context, maxFailures int) ([]domain.Source, error) {
		return nil, errors.New("database gone")
	}

	s := NewScheduler(params)
	_, err := s.FetchAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database gone")
}

func TestFetchSourceNow(t *testing.T) {
	sourceManager, _, _, fetcher, params := testDeps()

	sourceManager.GetSourceFunc = func(ctx context.Context, id int64) (*domain.Source, error) {
		if id != 42 {
			return nil, errors.New("source not found")
		}
		return &domain.Source{ID: 42, Name: "on-demand", URL: "https://od.example.com/rss"}, nil
	}
	fetcher.FetchFunc = func(ctx context.Context, src *domain.Source) ([]domain.RawArticle, error) {
		return []domain.RawArticle{
			{SourceID: src.ID, Title: "a", URL: src.URL + "/1"},
			{SourceID: src.ID, Title: "b", URL: src.URL + "/2"},
			{SourceID: src.ID, Title: "c", URL: src.URL + "/3"},
		}, nil
	}

	s := NewScheduler(params)
	result, err := s.FetchSourceNow(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, domain.HealthHealthy, result.Status)
	assert.Equal(t, 3, result.ArticlesFetched)
	assert.Empty(t, result.ErrorMessage)

	_, err = s.FetchSourceNow(context.Background(), 999)
	require.Error(t, err)
}

func TestFetchSourceNow_FetchError(t *testing.T) {
	sourceManager, _, _, fetcher, params := testDeps()

	sourceManager.GetSourceFunc = func(ctx context.Context, id int64) (*domain.Source, error) {
		return &domain.Source{ID: id, Name: "flaky", URL: "https://flaky.example.com/rss"}, nil
	}
	fetcher.FetchFunc = func(ctx context.Context, src *domain.Source) ([]domain.RawArticle, error) {
		return nil, errors.New("http 503")
	}

	s := NewScheduler(params)
	result, err := s.FetchSourceNow(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, domain.HealthError, result.Status)
	assert.Equal(t, "http 503", result.ErrorMessage)
}

func TestScheduler_StartStop(t *testing.T) {
	sourceManager, _, _, fetcher, params := testDeps()

	var cycles int32
	var mu sync.Mutex
	sourceManager.GetSourcesReadyForFetchFunc = func(ctx context.Context, maxFailures int) ([]domain.Source, error) {
		atomic.AddInt32(&cycles, 1)
		return nil, nil
	}
	fetcher.FetchFunc = func(ctx context.Context, src *domain.Source) ([]domain.RawArticle, error) {
		mu.Lock()
		defer mu.Unlock()
		return nil, nil
	}

	s := NewScheduler(params)
	s.Start(context.Background())

	// the first cycle runs immediately on start
	require.Eventually(t, func() bool { return atomic.LoadInt32(&cycles) >= 1 },
		time.Second, 10*time.Millisecond)

	s.Stop()
	assert.GreaterOrEqual(t, atomic.LoadInt32(&cycles), int32(1))
}

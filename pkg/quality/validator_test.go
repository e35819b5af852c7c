package quality

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/newspool/newspool/pkg/domain"
)

func testValidator() *Validator {
	v := New(Config{SpamKeywords: []string{"casino", "viagra", "click here"}})
	v.now = func() time.Time { return time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC) }
	return v
}

func goodArticle() *domain.RawArticle {
	return &domain.RawArticle{
		Title:       strings.Repeat("t", 50),
		Content:     strings.Repeat("c", 500),
		URL:         "https://example.com/article",
		PublishedAt: time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC),
	}
}

func TestValidate_PerfectArticleScores100(t *testing.T) {
	v := testValidator()
	res := v.Validate(goodArticle())

	assert.Equal(t, 100, res.Score)
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Issues)
}

func TestValidate_Deductions(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(a *domain.RawArticle)
		score   int
		issue   string
		isValid bool
	}{
		{
			name:    "short title",
			mutate:  func(a *domain.RawArticle) { a.Title = "tiny" },
			score:   80,
			issue:   "title too short",
			isValid: true,
		},
		{
			name:    "long title",
			mutate:  func(a *domain.RawArticle) { a.Title = strings.Repeat("t", 250) },
			score:   90,
			issue:   "title too long",
			isValid: true,
		},
		{
			name:    "short content",
			mutate:  func(a *domain.RawArticle) { a.Content = "thin" },
			score:   70,
			issue:   "content too short",
			isValid: true,
		},
		{
			name:    "spam keyword in title",
			mutate:  func(a *domain.RawArticle) { a.Title = "Best CASINO wins today, honestly amazing" },
			score:   85,
			issue:   "spam keyword",
			isValid: true,
		},
		{
			name:    "invalid url",
			mutate:  func(a *domain.RawArticle) { a.URL = "not-a-url" },
			score:   75,
			issue:   "not a valid absolute URL",
			isValid: true,
		},
		{
			name:    "stale article",
			mutate:  func(a *domain.RawArticle) { a.PublishedAt = time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC) },
			score:   90,
			issue:   "older than",
			isValid: true,
		},
		{
			name:    "future dated",
			mutate:  func(a *domain.RawArticle) { a.PublishedAt = time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC) },
			score:   80,
			issue:   "in the future",
			isValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := testValidator()
			a := goodArticle()
			tt.mutate(a)

			res := v.Validate(a)
			assert.Equal(t, tt.score, res.Score)
			assert.Equal(t, tt.isValid, res.IsValid)
			if assert.NotEmpty(t, res.Issues) {
				assert.Contains(t, res.Issues[0], tt.issue)
			}
		})
	}
}

func TestValidate_ThresholdBoundary(t *testing.T) {
	v := testValidator()

	// short title (-20) plus short content (-30) lands exactly on 50: still valid
	a := goodArticle()
	a.Title = "tiny"
	a.Content = "thin"
	res := v.Validate(a)
	assert.Equal(t, 50, res.Score)
	assert.True(t, res.IsValid, "score of exactly 50 passes the >= 50 threshold")

	// one more deduction drops below the threshold
	a.URL = "not-a-url"
	res = v.Validate(a)
	assert.Equal(t, 25, res.Score)
	assert.False(t, res.IsValid)
}

func TestValidate_ScoreMonotonicallyDecreases(t *testing.T) {
	v := testValidator()

	a := goodArticle()
	prev := v.Validate(a).Score

	mutations := []func(*domain.RawArticle){
		func(a *domain.RawArticle) { a.Title = "tiny" },
		func(a *domain.RawArticle) { a.Content = "thin" },
		func(a *domain.RawArticle) { a.URL = "::bad::" },
		func(a *domain.RawArticle) { a.PublishedAt = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC) },
	}

	for _, mutate := range mutations {
		mutate(a)
		score := v.Validate(a).Score
		assert.LessOrEqual(t, score, prev, "adding issues must not raise the score")
		prev = score
	}
}

func TestValidate_MultipleSpamKeywordsStack(t *testing.T) {
	v := testValidator()

	a := goodArticle()
	a.Content = strings.Repeat("c", 100) + " casino viagra click here"
	res := v.Validate(a)
	assert.Equal(t, 55, res.Score, "three keyword hits deduct 15 each")
	assert.Len(t, res.Issues, 3)
}

func TestValidate_ScoreFloorsAtZero(t *testing.T) {
	v := testValidator()

	res := v.Validate(&domain.RawArticle{
		Title:       "x",
		Content:     "casino viagra",
		URL:         "junk",
		PublishedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.Equal(t, 0, res.Score)
	assert.False(t, res.IsValid)
}

func TestValidate_ZeroPublishedAtSkipsRecencyChecks(t *testing.T) {
	v := testValidator()

	a := goodArticle()
	a.PublishedAt = time.Time{}
	res := v.Validate(a)
	assert.Equal(t, 100, res.Score)
}

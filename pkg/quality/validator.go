// Package quality scores normalized articles for minimal acceptability
// before they are admitted into the article pool.
package quality

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/newspool/newspool/pkg/domain"
)

// scoring deductions, cumulative with a floor at zero
const (
	deductShortTitle   = 20
	deductLongTitle    = 10
	deductShortContent = 30
	deductSpamKeyword  = 15
	deductInvalidURL   = 25
	deductStale        = 10
	deductFutureDated  = 20

	minTitleLength   = 10
	maxTitleLength   = 200
	minContentLength = 50

	defaultMinScore  = 50
	defaultMaxAge    = 30 * 24 * time.Hour
	defaultMaxFuture = 24 * time.Hour
)

// Validator assigns a 0-100 quality score to articles and decides pass/fail
type Validator struct {
	minScore     int
	spamKeywords []string
	maxAge       time.Duration
	maxFuture    time.Duration
	now          func() time.Time
}

// Config holds validator thresholds
type Config struct {
	MinScore     int
	SpamKeywords []string
	MaxAge       time.Duration
	MaxFuture    time.Duration
}

// New creates a validator with the given thresholds
func New(cfg Config) *Validator {
	if cfg.MinScore == 0 {
		cfg.MinScore = defaultMinScore
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = defaultMaxAge
	}
	if cfg.MaxFuture == 0 {
		cfg.MaxFuture = defaultMaxFuture
	}

	keywords := make([]string, len(cfg.SpamKeywords))
	for i, kw := range cfg.SpamKeywords {
		keywords[i] = strings.ToLower(kw)
	}

	return &Validator{
		minScore:     cfg.MinScore,
		spamKeywords: keywords,
		maxAge:       cfg.MaxAge,
		maxFuture:    cfg.MaxFuture,
		now:          time.Now,
	}
}

// Validate computes a fresh quality assessment for one article. Each
// deduction adds a human-readable issue for operator diagnosis.
func (v *Validator) Validate(a *domain.RawArticle) domain.QualityAssessment {
	score := 100
	var issues []string

	deduct := func(points int, issue string) {
		score -= points
		issues = append(issues, issue)
	}

	if len(a.Title) < minTitleLength {
		deduct(deductShortTitle, fmt.Sprintf("title too short: %d chars, want at least %d", len(a.Title), minTitleLength))
	}
	if len(a.Title) > maxTitleLength {
		deduct(deductLongTitle, fmt.Sprintf("title too long: %d chars, want at most %d", len(a.Title), maxTitleLength))
	}
	if len(a.Content) < minContentLength {
		deduct(deductShortContent, fmt.Sprintf("content too short: %d chars, want at least %d", len(a.Content), minContentLength))
	}

	haystack := strings.ToLower(a.Title + " " + a.Content)
	for _, kw := range v.spamKeywords {
		if strings.Contains(haystack, kw) {
			deduct(deductSpamKeyword, fmt.Sprintf("spam keyword %q found in title or content", kw))
		}
	}

	if !validAbsoluteURL(a.URL) {
		deduct(deductInvalidURL, fmt.Sprintf("url is not a valid absolute URL: %q", a.URL))
	}

	// recency checks apply only when a date was actually parsed
	if !a.PublishedAt.IsZero() {
		now := v.now()
		if a.PublishedAt.Before(now.Add(-v.maxAge)) {
			deduct(deductStale, fmt.Sprintf("published %s, older than %s", a.PublishedAt.Format(time.RFC3339), v.maxAge))
		}
		if a.PublishedAt.After(now.Add(v.maxFuture)) {
			deduct(deductFutureDated, fmt.Sprintf("published %s is more than %s in the future", a.PublishedAt.Format(time.RFC3339), v.maxFuture))
		}
	}

	if score < 0 {
		score = 0
	}

	return domain.QualityAssessment{
		Score:   score,
		IsValid: score >= v.minScore,
		Issues:  issues,
	}
}

// validAbsoluteURL reports whether s parses as an absolute http(s) URL
func validAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

package domain

import "time"

// SourceType identifies the fetch and parse strategy for a source
type SourceType string

// supported source types
const (
	SourceRSS     SourceType = "rss"
	SourceAPI     SourceType = "api"
	SourceScraper SourceType = "scraper"
)

// Source represents a configured news origin: an RSS/Atom feed, a JSON API
// endpoint, or an HTML page scraped with CSS selectors. Operational health
// fields (quality score, consecutive failures, timestamps) are mutated once
// per fetch attempt by the ingestion cycle.
type Source struct {
	ID                  int64
	Name                string
	URL                 string
	Type                SourceType
	APIKey              string
	Headers             map[string]string
	Selectors           *ScrapeSelectors
	Enabled             bool
	Priority            int
	QualityScore        float64
	ConsecutiveFailures int
	LastFetchedAt       time.Time
	NextFetchAt         time.Time
	FetchInterval       time.Duration
	ArticlesToday       int
	LastError           string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ScrapeSelectors holds CSS selectors for scraper-type sources. Item locates
// one article node; the rest are evaluated relative to it.
type ScrapeSelectors struct {
	Item       string `json:"item"`
	Title      string `json:"title"`
	Link       string `json:"link"`
	Summary    string `json:"summary,omitempty"`
	Time       string `json:"time,omitempty"`
	TimeFormat string `json:"time_format,omitempty"`
}

// DisplayName returns a human-readable identifier for a source
func (s *Source) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.URL
}

package domain

import "time"

// RawArticle is a normalized, pre-persistence article produced by parsing one
// feed item. Title and URL are mandatory; items missing either are dropped
// during parsing and never reach validation.
type RawArticle struct {
	SourceID     int64
	Title        string
	URL          string
	Content      string
	Summary      string
	Author       string
	ImageURL     string
	PublishedAt  time.Time
	QualityScore int
	Metadata     map[string]string
}

// Article is a persisted article row
type Article struct {
	ID            int64
	SourceID      int64
	SourceName    string
	Title         string
	URL           string
	NormalizedURL string
	Content       string
	Summary       string
	Author        string
	ImageURL      string
	PublishedAt   time.Time
	QualityScore  int
	CreatedAt     time.Time
}

// ArticleFilter represents filtering criteria for article queries
type ArticleFilter struct {
	SourceID int64
	Since    time.Time
	Search   string
	MinScore int
	Limit    int
	Offset   int
}

// QualityAssessment is the outcome of scoring one article. Computed fresh per
// article, never cached. Issues carries one human-readable reason per
// deduction for operator diagnosis.
type QualityAssessment struct {
	Score   int
	IsValid bool
	Issues  []string
}

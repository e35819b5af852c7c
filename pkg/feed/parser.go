package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/newspool/newspool/pkg/domain"
)

// ErrInvalidFormat indicates a payload that cannot be parsed as the source's
// declared format. Fatal for the source's cycle attempt, not for the cycle.
var ErrInvalidFormat = errors.New("invalid feed format")

// default limits for fetching and summarization
const (
	defaultMaxBodySize   = 10 * 1024 * 1024
	defaultSummaryLength = 200
)

// Parser retrieves raw payloads from sources and converts them into
// normalized articles. The parse path is selected by the source type:
// RSS/Atom via gofeed, JSON APIs via an ordered field-synonym table, and
// HTML pages via configured CSS selectors.
type Parser struct {
	client        *http.Client
	userAgent     string
	maxBodySize   int64
	summaryLength int
	policy        *bluemonday.Policy
}

// Config holds parser configuration
type Config struct {
	Timeout       time.Duration
	UserAgent     string
	MaxBodySize   int64
	SummaryLength int
}

// NewParser creates a new source parser
func NewParser(cfg Config) *Parser {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Newspool/1.0"
	}
	if cfg.MaxBodySize == 0 {
		cfg.MaxBodySize = defaultMaxBodySize
	}
	if cfg.SummaryLength == 0 {
		cfg.SummaryLength = defaultSummaryLength
	}

	return &Parser{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent:     cfg.UserAgent,
		maxBodySize:   cfg.MaxBodySize,
		summaryLength: cfg.SummaryLength,
		policy:        bluemonday.StrictPolicy(),
	}
}

// Fetch retrieves the source payload and parses it into normalized articles
func (p *Parser) Fetch(ctx context.Context, src *domain.Source) ([]domain.RawArticle, error) {
	body, err := p.fetch(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("fetch source %s: %w", src.DisplayName(), err)
	}
	return p.Parse(src, body)
}

// Parse converts one raw response body into zero or more normalized articles,
// dispatching on the source's declared type
func (p *Parser) Parse(src *domain.Source, body []byte) ([]domain.RawArticle, error) {
	switch src.Type {
	case domain.SourceRSS, "":
		return p.parseRSS(src, body)
	case domain.SourceAPI:
		return p.parseAPI(src, body)
	case domain.SourceScraper:
		return p.parseScraper(src, body)
	default:
		return nil, fmt.Errorf("source %s: unsupported source type %q", src.DisplayName(), src.Type)
	}
}

// fetch retrieves the raw payload for a source, bounded by maxBodySize
func (p *Parser) fetch(ctx context.Context, src *domain.Source) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", p.userAgent)
	for k, v := range src.Headers {
		req.Header.Set(k, v)
	}
	if src.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+src.APIKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// Package content extracts full article text from source pages, used to
// enrich articles whose feed entry carried only a stub.
package content

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/markusmobius/go-trafilatura"
)

// Extractor pulls readable text out of article pages via trafilatura
type Extractor struct {
	client        *http.Client
	userAgent     string
	minTextLength int
}

// Config holds extractor settings
type Config struct {
	Timeout       time.Duration
	UserAgent     string
	MinTextLength int
}

// NewExtractor creates a content extractor
func NewExtractor(cfg Config) *Extractor {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Mozilla/5.0 (compatible; Newspool/1.0)"
	}
	if cfg.MinTextLength == 0 {
		cfg.MinTextLength = 100
	}

	return &Extractor{
		client:        &http.Client{Timeout: cfg.Timeout},
		userAgent:     cfg.UserAgent,
		minTextLength: cfg.MinTextLength,
	}
}

// Extract retrieves the page at urlStr and returns its main text content
func (e *Extractor) Extract(ctx context.Context, urlStr string) (string, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", fmt.Errorf("invalid URL: %s", urlStr)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch URL %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, urlStr)
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		Deduplicate:     true,
		OriginalURL:     parsedURL,
	}

	result, err := trafilatura.Extract(resp.Body, opts)
	if err != nil {
		return "", fmt.Errorf("extract content from %s: %w", urlStr, err)
	}
	if result == nil {
		return "", fmt.Errorf("no content extracted from %s", urlStr)
	}

	text := strings.TrimSpace(result.ContentText)
	if len(text) < e.minTextLength {
		return "", fmt.Errorf("extracted text too short (%d chars) from %s", len(text), urlStr)
	}

	return text, nil
}

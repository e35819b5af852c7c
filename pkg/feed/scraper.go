package feed

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"

	"github.com/newspool/newspool/pkg/domain"
)

// parseScraper extracts articles from an HTML page using the source's CSS
// selectors. Relative links are resolved against the page URL. Items missing
// title or link are skipped individually.
func (p *Parser) parseScraper(src *domain.Source, body []byte) ([]domain.RawArticle, error) {
	sel := src.Selectors
	if sel == nil || sel.Item == "" || sel.Title == "" || sel.Link == "" {
		return nil, fmt.Errorf("source %s: scraper source requires item, title and link selectors", src.DisplayName())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("source %s: %w: %v", src.DisplayName(), ErrInvalidFormat, err)
	}

	base, err := url.Parse(src.URL)
	if err != nil {
		return nil, fmt.Errorf("source %s: parse base url: %w", src.DisplayName(), err)
	}

	now := time.Now()
	var articles []domain.RawArticle
	skipped := 0

	doc.Find(sel.Item).Each(func(_ int, node *goquery.Selection) {
		title := strings.TrimSpace(node.Find(sel.Title).First().Text())
		link := nodeLink(node, sel.Link)
		if title == "" || link == "" {
			skipped++
			return
		}

		if resolved, err := base.Parse(link); err == nil {
			link = resolved.String()
		}

		content := ""
		if sel.Summary != "" {
			content = strings.TrimSpace(node.Find(sel.Summary).First().Text())
		}

		// scraped pages rarely carry a timestamp; default to fetch time
		published := now
		if sel.Time != "" {
			if ts := scrapeTime(node, sel); !ts.IsZero() {
				published = ts
			}
		}

		articles = append(articles, domain.RawArticle{
			SourceID:    src.ID,
			Title:       title,
			URL:         link,
			Content:     content,
			Summary:     p.summarize(content),
			ImageURL:    inlineImageOf(node),
			PublishedAt: published,
			Metadata:    map[string]string{"format": "scraper"},
		})
	})

	if skipped > 0 {
		lgr.Printf("[WARN] source %s: skipped %d scraped items missing title or link", src.DisplayName(), skipped)
	}

	return articles, nil
}

// nodeLink resolves the link selector to an href attribute or, failing that,
// the matched element's text
func nodeLink(node *goquery.Selection, selector string) string {
	found := node.Find(selector).First()
	if href, ok := found.Attr("href"); ok {
		return strings.TrimSpace(href)
	}
	return strings.TrimSpace(found.Text())
}

// scrapeTime parses the time selector's text, using the configured layout
// first and falling back to the shared API layouts
func scrapeTime(node *goquery.Selection, sel *domain.ScrapeSelectors) time.Time {
	text := strings.TrimSpace(node.Find(sel.Time).First().Text())
	if text == "" {
		return time.Time{}
	}
	if sel.TimeFormat != "" {
		if ts, err := time.Parse(sel.TimeFormat, text); err == nil {
			return ts
		}
	}
	return parseAPITime(text)
}

// inlineImageOf returns the src of the first image inside an item node
func inlineImageOf(node *goquery.Selection) string {
	src, _ := node.Find("img[src]").First().Attr("src")
	return src
}

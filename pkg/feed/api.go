package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/newspool/newspool/pkg/domain"
)

// apiFieldMapping maps one canonical article field to an ordered list of
// source field names; the first present, non-empty candidate wins. New source
// quirks are handled by extending candidate lists, not by new branching.
type apiFieldMapping struct {
	canonical  string
	candidates []string
}

var apiFieldMap = []apiFieldMapping{
	{canonical: "title", candidates: []string{"title", "headline", "name"}},
	{canonical: "url", candidates: []string{"url", "link", "permalink", "web_url"}},
	{canonical: "content", candidates: []string{"content", "description", "summary", "body", "text"}},
	{canonical: "published_at", candidates: []string{"published_at", "publishedAt", "pub_date", "date", "created_at", "createdAt"}},
	{canonical: "author", candidates: []string{"author", "creator", "byline"}},
	{canonical: "image", candidates: []string{"image", "image_url", "imageUrl", "urlToImage", "thumbnail"}},
}

// apiItemKeys are checked in order when the response is not itself an array
var apiItemKeys = []string{"articles", "data", "results"}

var apiTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseAPI converts an arbitrary JSON API payload into normalized articles.
// Unparseable JSON or a missing item array fails the whole source; items
// missing title or url are skipped individually.
func (p *Parser) parseAPI(src *domain.Source, body []byte) ([]domain.RawArticle, error) {
	var payload interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("source %s: %w: %v", src.DisplayName(), ErrInvalidFormat, err)
	}

	items, err := locateItems(payload)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w: %v", src.DisplayName(), ErrInvalidFormat, err)
	}

	articles := make([]domain.RawArticle, 0, len(items))
	skipped := 0
	for _, item := range items {
		fields := mapFields(item)
		if fields["title"] == "" || fields["url"] == "" {
			skipped++
			continue
		}

		articles = append(articles, domain.RawArticle{
			SourceID:    src.ID,
			Title:       fields["title"],
			URL:         fields["url"],
			Content:     fields["content"],
			Summary:     p.summarize(fields["content"]),
			Author:      fields["author"],
			ImageURL:    fields["image"],
			PublishedAt: parseAPITime(fields["published_at"]),
			Metadata:    map[string]string{"format": "api"},
		})
	}

	if skipped > 0 {
		lgr.Printf("[WARN] source %s: skipped %d api items missing title or url", src.DisplayName(), skipped)
	}

	return articles, nil
}

// locateItems finds the item array: the response itself, or the first of the
// known wrapper keys holding an array
func locateItems(payload interface{}) ([]map[string]interface{}, error) {
	switch v := payload.(type) {
	case []interface{}:
		return toItemMaps(v), nil
	case map[string]interface{}:
		for _, key := range apiItemKeys {
			if arr, ok := v[key].([]interface{}); ok {
				return toItemMaps(arr), nil
			}
		}
	}
	return nil, errors.New("no item array found in response")
}

func toItemMaps(arr []interface{}) []map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(arr))
	for _, el := range arr {
		if m, ok := el.(map[string]interface{}); ok {
			items = append(items, m)
		}
	}
	return items
}

// mapFields applies the field-synonym table to one raw item
func mapFields(item map[string]interface{}) map[string]string {
	fields := make(map[string]string, len(apiFieldMap))
	for _, m := range apiFieldMap {
		for _, cand := range m.candidates {
			val, ok := item[cand]
			if !ok || val == nil {
				continue
			}
			if s := stringValue(val); s != "" {
				fields[m.canonical] = s
				break
			}
		}
	}
	return fields
}

// stringValue extracts a usable string from a raw JSON value; author-like
// objects are reduced to their name field
func stringValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]interface{}:
		if name, ok := t["name"].(string); ok {
			return strings.TrimSpace(name)
		}
	}
	return ""
}

// parseAPITime tries known layouts, returning zero time when none match
func parseAPITime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range apiTimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}

package feed

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"github.com/mmcdole/gofeed"

	"github.com/newspool/newspool/pkg/domain"
)

// parseRSS converts an RSS/Atom payload into normalized articles. Malformed
// XML fails the whole source; individual items missing title or link are
// skipped without aborting the batch. Both <link>text</link> and atom-style
// <link href=...> forms are handled by gofeed.
func (p *Parser) parseRSS(src *domain.Source, body []byte) ([]domain.RawArticle, error) {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("source %s: %w: %v", src.DisplayName(), ErrInvalidFormat, err)
	}

	articles := make([]domain.RawArticle, 0, len(parsed.Items))
	skipped := 0
	for _, item := range parsed.Items {
		title := strings.TrimSpace(item.Title)
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			skipped++
			continue
		}

		// first matching content selector wins: description, then full content
		content := item.Description
		if content == "" {
			content = item.Content
		}

		article := domain.RawArticle{
			SourceID: src.ID,
			Title:    title,
			URL:      link,
			Content:  content,
			Summary:  p.summarize(content),
			ImageURL: itemImage(item, parsed.Image),
			Metadata: map[string]string{"format": "rss", "guid": item.GUID},
		}

		if item.Author != nil {
			article.Author = item.Author.Name
		}

		if item.PublishedParsed != nil {
			article.PublishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			article.PublishedAt = *item.UpdatedParsed
		}

		articles = append(articles, article)
	}

	if skipped > 0 {
		lgr.Printf("[WARN] source %s: skipped %d feed items missing title or link", src.DisplayName(), skipped)
	}

	return articles, nil
}

// itemImage locates an article image via a priority-ordered search:
// media:thumbnail, media:content of image type, image enclosure, item/channel
// image element, first inline <img> inside the description HTML
func itemImage(item *gofeed.Item, feedImage *gofeed.Image) string {
	if media, ok := item.Extensions["media"]; ok {
		for _, thumb := range media["thumbnail"] {
			if u := thumb.Attrs["url"]; u != "" {
				return u
			}
		}
		for _, c := range media["content"] {
			if c.Attrs["url"] == "" {
				continue
			}
			if strings.HasPrefix(c.Attrs["type"], "image") || c.Attrs["medium"] == "image" {
				return c.Attrs["url"]
			}
		}
	}

	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image") && enc.URL != "" {
			return enc.URL
		}
	}

	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	if feedImage != nil && feedImage.URL != "" {
		return feedImage.URL
	}

	return inlineImage(item.Description)
}

// inlineImage returns the src of the first <img> tag in an HTML fragment
func inlineImage(fragment string) string {
	if !strings.Contains(fragment, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	return src
}

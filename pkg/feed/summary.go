package feed

import (
	"html"
	"strings"
	"unicode/utf8"
)

// summarize produces a short plain-text summary from possibly-HTML content
func (p *Parser) summarize(content string) string {
	return truncateSummary(p.stripHTML(content), p.summaryLength)
}

// stripHTML removes all markup, unescapes entities and collapses whitespace
func (p *Parser) stripHTML(s string) string {
	text := html.UnescapeString(p.policy.Sanitize(s))
	return strings.Join(strings.Fields(text), " ")
}

// truncateSummary cuts text to the target length, preferring the last
// sentence boundary when it falls past 70% of the target; otherwise it cuts
// at the last word boundary and marks the cut with an ellipsis.
func truncateSummary(text string, limit int) string {
	if limit <= 0 {
		limit = defaultSummaryLength
	}
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	cut := string([]rune(text)[:limit])

	if idx := lastSentenceEnd(cut); idx >= 0 {
		if utf8.RuneCountInString(cut[:idx+1]) >= limit*7/10 {
			return strings.TrimSpace(cut[:idx+1])
		}
	}

	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut) + "..."
}

// lastSentenceEnd returns the byte index of the last sentence-ending mark
func lastSentenceEnd(s string) int {
	end := -1
	for _, mark := range []string{".", "!", "?"} {
		if idx := strings.LastIndex(s, mark); idx > end {
			end = idx
		}
	}
	return end
}

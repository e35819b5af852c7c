// Package dedup removes exact and near-duplicate articles from a fetch
// batch, preferring the most recently published version of any cluster.
package dedup

import (
	"net/url"
	"sort"
	"strings"
	"unicode"

	"github.com/go-pkgz/lgr"

	"github.com/newspool/newspool/pkg/domain"
)

// DefaultSimilarityThreshold is the Jaccard similarity above which two
// normalized titles are treated as near-duplicates
const DefaultSimilarityThreshold = 0.85

// defaultTrackingParams are stripped from URLs during normalization
var defaultTrackingParams = []string{
	"utm_source", "utm_medium", "utm_campaign", "utm_content", "utm_term",
	"ref", "source",
}

// Deduplicator removes duplicates within one batch. The title-similarity
// scan is O(n^2) in batch size, which is fine for per-source fetch batches
// of tens to low hundreds of items.
type Deduplicator struct {
	threshold      float64
	trackingParams map[string]struct{}
}

// New creates a deduplicator; zero threshold and nil params select defaults
func New(threshold float64, trackingParams []string) *Deduplicator {
	if threshold == 0 {
		threshold = DefaultSimilarityThreshold
	}
	if len(trackingParams) == 0 {
		trackingParams = defaultTrackingParams
	}

	params := make(map[string]struct{}, len(trackingParams))
	for _, p := range trackingParams {
		params[strings.ToLower(p)] = struct{}{}
	}

	return &Deduplicator{threshold: threshold, trackingParams: params}
}

// Dedupe returns the batch with duplicates removed. Articles are scanned
// newest-first, so the first occurrence of any duplicate cluster is the one
// that survives. The operation is idempotent.
func (d *Deduplicator) Dedupe(articles []domain.RawArticle) []domain.RawArticle {
	if len(articles) < 2 {
		return articles
	}

	sorted := make([]domain.RawArticle, len(articles))
	copy(sorted, articles)
	// stable sort keeps the original order for equal timestamps
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt.After(sorted[j].PublishedAt)
	})

	seenURLs := make(map[string]struct{}, len(sorted))
	var seenTitles []map[string]struct{}
	result := make([]domain.RawArticle, 0, len(sorted))

	for _, a := range sorted {
		normURL := d.NormalizeURL(a.URL)
		if _, ok := seenURLs[normURL]; ok {
			lgr.Printf("[DEBUG] dropping exact url duplicate: %s", a.Title)
			continue
		}

		tokens := titleTokens(a.Title)
		if d.nearDuplicate(tokens, seenTitles) {
			lgr.Printf("[DEBUG] dropping near-duplicate title: %s", a.Title)
			continue
		}

		seenURLs[normURL] = struct{}{}
		seenTitles = append(seenTitles, tokens)
		result = append(result, a)
	}

	return result
}

// nearDuplicate reports whether tokens exceed the similarity threshold
// against any previously accepted title
func (d *Deduplicator) nearDuplicate(tokens map[string]struct{}, seen []map[string]struct{}) bool {
	for _, prev := range seen {
		if jaccard(tokens, prev) > d.threshold {
			return true
		}
	}
	return false
}

// NormalizeURL strips known tracking query parameters and the fragment, and
// lower-cases the result. Unparseable URLs are lower-cased as-is.
func (d *Deduplicator) NormalizeURL(raw string) string {
	return normalizeURL(raw, d.trackingParams)
}

// NormalizeURL normalizes a URL with the default tracking parameter set. Used
// by the storage layer to key the cross-cycle uniqueness index, so persisted
// keys stay consistent with in-batch deduplication.
func NormalizeURL(raw string) string {
	return normalizeURL(raw, defaultTrackingSet)
}

var defaultTrackingSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(defaultTrackingParams))
	for _, p := range defaultTrackingParams {
		set[p] = struct{}{}
	}
	return set
}()

func normalizeURL(raw string, trackingParams map[string]struct{}) string {
	u, err := url.Parse(raw)
	if err != nil {
		return strings.ToLower(raw)
	}

	q := u.Query()
	for param := range q {
		if _, ok := trackingParams[strings.ToLower(param)]; ok {
			q.Del(param)
		}
	}
	u.RawQuery = q.Encode()
	u.Fragment = ""

	return strings.ToLower(u.String())
}

// normalizeTitle lower-cases, strips punctuation and collapses whitespace
func normalizeTitle(title string) string {
	lowered := strings.ToLower(title)
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, lowered)
	return strings.Join(strings.Fields(stripped), " ")
}

// titleTokens returns the word set of a normalized title
func titleTokens(title string) map[string]struct{} {
	words := strings.Fields(normalizeTitle(title))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// jaccard computes intersection over union of two word sets
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for w := range a {
		if _, ok := b[w]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

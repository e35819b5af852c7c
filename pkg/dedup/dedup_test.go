package dedup

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newspool/newspool/pkg/domain"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalizeURL(t *testing.T) {
	d := New(0, nil)

	tests := []struct {
		in   string
		want string
	}{
		{"https://a.com/1?utm_source=x&utm_medium=y", "https://a.com/1"},
		{"https://a.com/1?id=5&utm_campaign=z", "https://a.com/1?id=5"},
		{"https://a.com/1#section", "https://a.com/1"},
		{"HTTPS://A.com/Path", "https://a.com/path"},
		{"https://a.com/1?ref=hn&source=rss", "https://a.com/1"},
		{"https://a.com/1", "https://a.com/1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, d.NormalizeURL(tt.in), "input %q", tt.in)
		assert.Equal(t, tt.want, NormalizeURL(tt.in), "package-level, input %q", tt.in)
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bitcoin Hits $70K!", "bitcoin hits 70k"},
		{"  Spaced    out\ttitle  ", "spaced out title"},
		{"No-Punctuation, Please.", "no punctuation please"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeTitle(tt.in))
	}
}

func TestDedupe_ExactURLDuplicateKeepsNewest(t *testing.T) {
	d := New(0, nil)

	batch := []domain.RawArticle{
		{Title: "Older Version Of Story", URL: "https://a.com/1", PublishedAt: day(1)},
		{Title: "Newer Version Of Story", URL: "https://a.com/1?utm_source=x", PublishedAt: day(2)},
	}

	out := d.Dedupe(batch)
	require.Len(t, out, 1)
	assert.Equal(t, "Newer Version Of Story", out[0].Title)
	assert.Equal(t, day(2), out[0].PublishedAt)
}

func TestDedupe_SpecScenario(t *testing.T) {
	// the canonical cross-check: same article, one URL with tracking params
	d := New(0, nil)

	batch := []domain.RawArticle{
		{Title: "Bitcoin Hits $70K", URL: "https://a.com/1?utm_source=x", PublishedAt: day(2)},
		{Title: "Bitcoin Hits 70K Dollars", URL: "https://a.com/1", PublishedAt: day(1)},
	}

	out := d.Dedupe(batch)
	require.Len(t, out, 1)
	assert.Equal(t, day(2), out[0].PublishedAt)
}

func TestDedupe_TitleSimilarityThreshold(t *testing.T) {
	// ten-word title vs its nine-word subset: jaccard 9/10 = 0.9, above the
	// 0.85 threshold, so only the newer survives
	tenWords := "alpha bravo charlie delta echo foxtrot golf hotel india juliet"
	nineWords := "alpha bravo charlie delta echo foxtrot golf hotel india"

	d := New(0, nil)
	out := d.Dedupe([]domain.RawArticle{
		{Title: tenWords, URL: "https://a.com/new", PublishedAt: day(2)},
		{Title: nineWords, URL: "https://a.com/old", PublishedAt: day(1)},
	})
	require.Len(t, out, 1)
	assert.Equal(t, tenWords, out[0].Title)
}

func TestDedupe_TitleSimilarityBelowThreshold(t *testing.T) {
	// ten-word title vs an eight-word subset: jaccard 8/10 = 0.8, below the
	// threshold, both survive
	tenWords := "alpha bravo charlie delta echo foxtrot golf hotel india juliet"
	eightWords := "alpha bravo charlie delta echo foxtrot golf hotel"

	d := New(0, nil)
	out := d.Dedupe([]domain.RawArticle{
		{Title: tenWords, URL: "https://a.com/new", PublishedAt: day(2)},
		{Title: eightWords, URL: "https://a.com/old", PublishedAt: day(1)},
	})
	assert.Len(t, out, 2)
}

func TestDedupe_Idempotent(t *testing.T) {
	d := New(0, nil)

	batch := []domain.RawArticle{
		{Title: "First Unique Story About Storms", URL: "https://a.com/1", PublishedAt: day(3)},
		{Title: "First Unique Story About Storms", URL: "https://a.com/1", PublishedAt: day(2)},
		{Title: "Completely Different Second Report", URL: "https://a.com/2", PublishedAt: day(1)},
	}

	once := d.Dedupe(batch)
	twice := d.Dedupe(once)
	assert.Equal(t, once, twice, "running dedupe on its own output removes nothing")
}

func TestDedupe_TieBrokenByOriginalOrder(t *testing.T) {
	d := New(0, nil)

	// identical timestamps: stable sort keeps input order, first one wins
	batch := []domain.RawArticle{
		{Title: "Same Moment Story One Here", URL: "https://a.com/1", PublishedAt: day(1)},
		{Title: "Same Moment Story One Here", URL: "https://a.com/1?ref=x", PublishedAt: day(1)},
	}

	out := d.Dedupe(batch)
	require.Len(t, out, 1)
	assert.Equal(t, "https://a.com/1", out[0].URL)
}

func TestDedupe_EmptyAndSingle(t *testing.T) {
	d := New(0, nil)

	assert.Empty(t, d.Dedupe(nil))
	single := []domain.RawArticle{{Title: "Only One", URL: "https://a.com/1"}}
	assert.Equal(t, single, d.Dedupe(single))
}

func TestDedupe_LargeBatchUniqueSurvives(t *testing.T) {
	d := New(0, nil)

	var batch []domain.RawArticle
	for i := 0; i < 50; i++ {
		batch = append(batch, domain.RawArticle{
			Title:       fmt.Sprintf("story %d about topic %d entirely unrelated %d", i, i*7, i*13),
			URL:         fmt.Sprintf("https://a.com/%d", i),
			PublishedAt: day(1).Add(time.Duration(i) * time.Minute),
		})
	}

	assert.Len(t, d.Dedupe(batch), 50)
}

package feed

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newspool/newspool/pkg/domain"
)

func rssFeed(items string) []byte {
	return []byte(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
<channel><title>t</title><link>https://example.com</link>%s</channel></rss>`, items))
}

func TestParseRSS_AllItemsWellFormed(t *testing.T) {
	var items string
	for i := 1; i <= 5; i++ {
		items += fmt.Sprintf(`<item><title>Article %d</title><link>https://example.com/%d</link><description>body %d</description></item>`, i, i, i)
	}

	p := NewParser(Config{})
	articles, err := p.parseRSS(&domain.Source{Name: "s"}, rssFeed(items))
	require.NoError(t, err)
	assert.Len(t, articles, 5)
}

func TestParseRSS_ItemMissingTitleSkipped(t *testing.T) {
	// five items, third has no title: exactly that one is dropped,
	// siblings are unaffected
	items := `
		<item><title>One</title><link>https://example.com/1</link></item>
		<item><title>Two</title><link>https://example.com/2</link></item>
		<item><link>https://example.com/3</link></item>
		<item><title>Four</title><link>https://example.com/4</link></item>
		<item><title>Five</title><link>https://example.com/5</link></item>`

	p := NewParser(Config{})
	articles, err := p.parseRSS(&domain.Source{Name: "s"}, rssFeed(items))
	require.NoError(t, err)
	require.Len(t, articles, 4)

	titles := make([]string, len(articles))
	for i, a := range articles {
		titles[i] = a.Title
	}
	assert.Equal(t, []string{"One", "Two", "Four", "Five"}, titles)
}

func TestParseRSS_ItemMissingLinkSkipped(t *testing.T) {
	items := `
		<item><title>Linked</title><link>https://example.com/1</link></item>
		<item><title>Unlinked</title></item>`

	p := NewParser(Config{})
	articles, err := p.parseRSS(&domain.Source{Name: "s"}, rssFeed(items))
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Linked", articles[0].Title)
}

func TestParseRSS_MalformedXML(t *testing.T) {
	p := NewParser(Config{})
	_, err := p.parseRSS(&domain.Source{Name: "garbage"}, []byte("this is not xml at all"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.Contains(t, err.Error(), "garbage")
}

func TestParseRSS_ImagePriority(t *testing.T) {
	tests := []struct {
		name string
		item string
		want string
	}{
		{
			name: "media thumbnail wins over enclosure",
			item: `<item><title>a</title><link>https://e.com/1</link>
				<media:thumbnail url="https://img.example.com/thumb.jpg"/>
				<enclosure url="https://img.example.com/enc.jpg" type="image/jpeg" length="1"/></item>`,
			want: "https://img.example.com/thumb.jpg",
		},
		{
			name: "media content image",
			item: `<item><title>a</title><link>https://e.com/1</link>
				<media:content url="https://img.example.com/content.png" medium="image"/></item>`,
			want: "https://img.example.com/content.png",
		},
		{
			name: "image enclosure",
			item: `<item><title>a</title><link>https://e.com/1</link>
				<enclosure url="https://img.example.com/enc.jpg" type="image/jpeg" length="1"/></item>`,
			want: "https://img.example.com/enc.jpg",
		},
		{
			name: "non-image enclosure ignored",
			item: `<item><title>a</title><link>https://e.com/1</link>
				<enclosure url="https://img.example.com/audio.mp3" type="audio/mpeg" length="1"/></item>`,
			want: "",
		},
		{
			name: "inline img in description",
			item: `<item><title>a</title><link>https://e.com/1</link>
				<description>&lt;p&gt;text&lt;/p&gt;&lt;img src="https://img.example.com/inline.gif"&gt;</description></item>`,
			want: "https://img.example.com/inline.gif",
		},
	}

	p := NewParser(Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			articles, err := p.parseRSS(&domain.Source{Name: "s"}, rssFeed(tt.item))
			require.NoError(t, err)
			require.Len(t, articles, 1)
			assert.Equal(t, tt.want, articles[0].ImageURL)
		})
	}
}

func TestParseRSS_SummaryStripsHTML(t *testing.T) {
	items := `<item><title>a</title><link>https://e.com/1</link>
		<description>&lt;p&gt;Hello &lt;b&gt;world&lt;/b&gt;&lt;/p&gt;</description></item>`

	p := NewParser(Config{})
	articles, err := p.parseRSS(&domain.Source{Name: "s"}, rssFeed(items))
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Hello world", articles[0].Summary)
}

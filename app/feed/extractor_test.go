package feed

import (
	"strings"
	"testing"

	"github.com/lysyi3m/fvwm-rss/app/config"
	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

func thumbnail(url string) ext.Extensions {
	return ext.Extensions{
		"media": {
			"thumbnail": {{Name: "thumbnail", Attrs: map[string]string{"url": url}}},
		},
	}
}

func TestStructuredResolverPrecedence(t *testing.T) {
	tests := []struct {
		name          string
		item          *gofeed.Item
		expectedURL   string
		expectedSrc   MediaSource
		expectNoMedia bool
	}{
		{
			name: "thumbnail wins over enclosure",
			item: &gofeed.Item{
				Extensions: thumbnail("https://example.com/thumb.jpg"),
				Enclosures: []*gofeed.Enclosure{{URL: "https://example.com/big.jpg"}},
			},
			expectedURL: "https://example.com/thumb.jpg",
			expectedSrc: SourceThumbnail,
		},
		{
			name: "enclosure only",
			item: &gofeed.Item{
				Enclosures: []*gofeed.Enclosure{{URL: "https://example.com/big.jpg"}, {URL: "https://example.com/other.jpg"}},
			},
			expectedURL: "https://example.com/big.jpg",
			expectedSrc: SourceEnclosure,
		},
		{
			name: "thumbnail nested in media:group",
			item: &gofeed.Item{
				Extensions: ext.Extensions{
					"media": {
						"group": {{
							Name: "group",
							Children: map[string][]ext.Extension{
								"title":     {{Name: "title", Value: "Video"}},
								"thumbnail": {{Name: "thumbnail", Attrs: map[string]string{"url": "https://i.example.com/hq.jpg"}}},
							},
						}},
					},
				},
				Enclosures: []*gofeed.Enclosure{{URL: "https://example.com/big.jpg"}},
			},
			expectedURL: "https://i.example.com/hq.jpg",
			expectedSrc: SourceThumbnail,
		},
		{
			name: "thumbnail nested in media:content",
			item: &gofeed.Item{
				Extensions: ext.Extensions{
					"media": {
						"content": {{
							Name:  "content",
							Attrs: map[string]string{"url": "https://example.com/video.mp4"},
							Children: map[string][]ext.Extension{
								"thumbnail": {{Name: "thumbnail", Attrs: map[string]string{"url": "https://example.com/poster.jpg"}}},
							},
						}},
					},
				},
			},
			expectedURL: "https://example.com/poster.jpg",
			expectedSrc: SourceThumbnail,
		},
		{
			name:          "no media",
			item:          &gofeed.Item{},
			expectNoMedia: true,
		},
		{
			name:          "empty thumbnail and enclosure",
			item:          &gofeed.Item{Extensions: thumbnail(""), Enclosures: []*gofeed.Enclosure{nil}},
			expectNoMedia: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, ok := NewStructuredResolver().Resolve(tt.item)
			if !ok {
				t.Fatal("Structured resolver should always succeed")
			}
			if tt.expectNoMedia {
				if resolved.Media != nil {
					t.Errorf("Expected no media, got %+v", resolved.Media)
				}
				return
			}
			if resolved.Media == nil {
				t.Fatal("Expected media")
			}
			if resolved.Media.URL != tt.expectedURL {
				t.Errorf("Expected URL '%s', got '%s'", tt.expectedURL, resolved.Media.URL)
			}
			if resolved.Media.Source != tt.expectedSrc {
				t.Errorf("Expected source %s, got %s", tt.expectedSrc, resolved.Media.Source)
			}
		})
	}
}

func TestExtractorPrefersEmbeddedContent(t *testing.T) {
	doc := &Document{Items: []*gofeed.Item{{
		Title:      "Structured",
		Link:       "https://structured.example.com",
		Content:    `<a href="Z"><img alt="X" src="Y"></a>`,
		Extensions: thumbnail("https://structured.example.com/thumb.jpg"),
	}}}

	items := NewExtractor(160).Run(doc, nil)
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}

	item := items[0]
	if item.Title != "X" || item.Link != "Z" {
		t.Errorf("Expected title=X link=Z, got title=%s link=%s", item.Title, item.Link)
	}
	if item.Media == nil || item.Media.URL != "Y" || item.Media.Source != SourceEmbedded {
		t.Errorf("Expected embedded media Y, got %+v", item.Media)
	}
}

func TestExtractorFallsBackToStructuredFields(t *testing.T) {
	doc := &Document{Items: []*gofeed.Item{{
		Title:   "A \"quoted\" 100% title",
		Link:    "http://example.com/a\"b",
		Content: "<p>full article body without pictures</p>",
	}}}

	items := NewExtractor(160).Run(doc, nil)
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if items[0].Title != "A quoted 100%% title" {
		t.Errorf("Unexpected title: %s", items[0].Title)
	}
	if items[0].Link != "http://example.com/a%22b" {
		t.Errorf("Unexpected link: %s", items[0].Link)
	}
}

func TestExtractorAppliesLimit(t *testing.T) {
	doc := &Document{Items: []*gofeed.Item{{Title: strings.Repeat("word ", 20), Link: "http://example.com"}}}

	items := NewExtractor(10).Run(doc, nil)
	if len([]rune(items[0].Title)) != 10 || !strings.HasSuffix(items[0].Title, "...") {
		t.Errorf("Expected title truncated to 10 runes, got '%s'", items[0].Title)
	}
}

func TestExtractorKeepsEveryItem(t *testing.T) {
	doc := &Document{Items: []*gofeed.Item{
		{Title: "one", Link: "http://example.com/1"},
		{Title: "two", Link: "http://example.com/2", Enclosures: []*gofeed.Enclosure{{URL: "http://example.com/2.jpg"}}},
		{Title: "three", Link: "http://example.com/3", Extensions: thumbnail("http://example.com/3.jpg")},
	}}

	items := NewExtractor(160).Run(doc, nil)
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	for i, expected := range []string{"one", "two", "three"} {
		if items[i].Title != expected {
			t.Errorf("Item %d: expected '%s', got '%s'", i, expected, items[i].Title)
		}
	}
}

func TestExtractorAppliesFilters(t *testing.T) {
	doc := &Document{Items: []*gofeed.Item{
		{Title: "Go release notes", Link: "http://example.com/1"},
		{Title: "Sponsored: buy now", Link: "http://example.com/2"},
	}}
	filters := []config.Filter{{Field: "title", Excludes: []string{"sponsored"}}}

	items := NewExtractor(160).Run(doc, filters)
	if len(items) != 1 || items[0].Title != "Go release notes" {
		t.Errorf("Expected only the unfiltered item, got %+v", items)
	}
}

func TestExtractorFromParsedRSS(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
  <channel>
    <title>Pictures</title>
    <item>
      <title>With thumbnail</title>
      <link>https://example.com/1</link>
      <media:thumbnail url="https://example.com/1.jpg"/>
      <enclosure url="https://example.com/1-big.jpg" length="100" type="image/jpeg"/>
    </item>
    <item>
      <title>With enclosure</title>
      <link>https://example.com/2</link>
      <enclosure url="https://example.com/2.jpg" length="100" type="image/jpeg"/>
    </item>
    <item>
      <title>Plain</title>
      <link>https://example.com/3</link>
    </item>
  </channel>
</rss>`

	doc, err := NewParser().Run([]byte(rssData))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	items := NewExtractor(160).Run(doc, nil)
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	if items[0].Media == nil || items[0].Media.Source != SourceThumbnail || items[0].Media.URL != "https://example.com/1.jpg" {
		t.Errorf("Expected thumbnail media for first item, got %+v", items[0].Media)
	}
	if items[1].Media == nil || items[1].Media.Source != SourceEnclosure {
		t.Errorf("Expected enclosure media for second item, got %+v", items[1].Media)
	}
	if items[2].Media != nil {
		t.Errorf("Expected no media for third item, got %+v", items[2].Media)
	}
}

func TestExtractorFromParsedAtomMediaGroup(t *testing.T) {
	atomData := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:media="http://search.yahoo.com/mrss/">
  <title>Channel</title>
  <id>urn:channel</id>
  <updated>2024-01-01T00:00:00Z</updated>
  <entry>
    <id>urn:video:1</id>
    <title>Video</title>
    <link rel="alternate" href="https://video.example.com/watch?v=1"/>
    <updated>2024-01-01T00:00:00Z</updated>
    <media:group>
      <media:title>Video</media:title>
      <media:thumbnail url="https://i.example.com/vi/1/hqdefault.jpg" width="480" height="360"/>
    </media:group>
  </entry>
</feed>`

	doc, err := NewParser().Run([]byte(atomData))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	items := NewExtractor(160).Run(doc, nil)
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	media := items[0].Media
	if media == nil || media.Source != SourceThumbnail || media.URL != "https://i.example.com/vi/1/hqdefault.jpg" {
		t.Errorf("Expected nested thumbnail, got %+v", media)
	}
}

package tasks

import (
	"context"

	"github.com/lysyi3m/fvwm-rss/app/config"
	"github.com/lysyi3m/fvwm-rss/app/feed"
	"github.com/lysyi3m/fvwm-rss/app/menu"
)

// FeedFetcher retrieves raw feed bytes. Implemented by *feed.Fetcher.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FeedParser turns raw bytes into a document. Implemented by *feed.Parser.
type FeedParser interface {
	Run(data []byte) (*feed.Document, error)
}

// ItemExtractor resolves and filters a document's items. Implemented by
// *feed.Extractor.
type ItemExtractor interface {
	Run(doc *feed.Document, filters []config.Filter) []feed.Item
}

// MenuRenderer formats menus as directive lines. Implemented by
// *menu.Renderer.
type MenuRenderer interface {
	Lines(m menu.Menu) []string
	ErrorLines(menuID string) []string
}

// Output receives rendered directives. Implemented by *sink.Batch.
type Output interface {
	Append(lines ...string) error
}

var (
	_ FeedFetcher   = (*feed.Fetcher)(nil)
	_ FeedParser    = (*feed.Parser)(nil)
	_ ItemExtractor = (*feed.Extractor)(nil)
	_ MenuRenderer  = (*menu.Renderer)(nil)
)

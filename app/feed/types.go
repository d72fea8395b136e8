package feed

import (
	"github.com/mmcdole/gofeed"
)

// Kind tells which element type a document's items came from
type Kind string

const (
	KindRSS  Kind = "rss"  // <item>
	KindAtom Kind = "atom" // <entry>
)

// Document is a parsed feed. It is read-only once built.
type Document struct {
	Title string
	Kind  Kind
	Items []*gofeed.Item
}

// MediaSource records which extraction branch supplied an item's picture
type MediaSource int

const (
	SourceThumbnail MediaSource = iota + 1 // media:thumbnail
	SourceEnclosure                        // enclosure
	SourceEmbedded                         // img inside embedded content
)

func (s MediaSource) String() string {
	switch s {
	case SourceThumbnail:
		return "thumbnail"
	case SourceEnclosure:
		return "enclosure"
	case SourceEmbedded:
		return "embedded"
	default:
		return "none"
	}
}

type MediaRef struct {
	URL    string
	Source MediaSource
}

// Item is one resolved feed entry
type Item struct {
	Title string
	Link  string
	Media *MediaRef
}

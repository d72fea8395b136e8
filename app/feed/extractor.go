package feed

import (
	"slices"
	"strings"

	"github.com/lysyi3m/fvwm-rss/app/config"
	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
	"github.com/samber/lo"
)

// Resolver is one field-resolution strategy. ok is false when the strategy
// has nothing to offer for the item.
type Resolver interface {
	Resolve(item *gofeed.Item) (resolved Item, ok bool)
}

// StructuredResolver reads the item's own title, link, media:thumbnail and
// enclosure fields. It always succeeds.
type StructuredResolver struct{}

func NewStructuredResolver() *StructuredResolver {
	return &StructuredResolver{}
}

func (r *StructuredResolver) Resolve(item *gofeed.Item) (Item, bool) {
	resolved := Item{
		Title: item.Title,
		Link:  strings.TrimSpace(item.Link),
	}

	if url := thumbnailURL(item.Extensions); url != "" {
		resolved.Media = &MediaRef{URL: url, Source: SourceThumbnail}
	} else if url := enclosureURL(item); url != "" {
		resolved.Media = &MediaRef{URL: url, Source: SourceEnclosure}
	}

	return resolved, true
}

// thumbnailURL finds the first media:thumbnail at any depth, so thumbnails
// nested in media:group or media:content count too.
func thumbnailURL(extensions ext.Extensions) string {
	if extensions == nil {
		return ""
	}
	return findThumbnail(extensions["media"])
}

func findThumbnail(elements map[string][]ext.Extension) string {
	for _, thumb := range elements["thumbnail"] {
		if url := strings.TrimSpace(thumb.Attrs["url"]); url != "" {
			return url
		}
	}

	names := lo.Without(lo.Keys(elements), "thumbnail")
	slices.Sort(names)

	for _, name := range names {
		for _, element := range elements[name] {
			if url := findThumbnail(element.Children); url != "" {
				return url
			}
		}
	}
	return ""
}

// Only the first enclosure counts: RSS 2.0 allows one per item.
func enclosureURL(item *gofeed.Item) string {
	if len(item.Enclosures) == 0 || item.Enclosures[0] == nil {
		return ""
	}
	return strings.TrimSpace(item.Enclosures[0].URL)
}

type Extractor struct {
	resolvers []Resolver
	filterer  *Filterer
	limit     int
}

// NewExtractor builds an extractor trying embedded content first, then the
// structured fields.
func NewExtractor(limit int) *Extractor {
	return &Extractor{
		resolvers: []Resolver{
			NewEmbeddedResolver(),
			NewStructuredResolver(),
		},
		filterer: NewFilterer(),
		limit:    limit,
	}
}

// Run resolves every item of the document in order, drops the ones caught by
// filters and prepares the text fields for a quoted menu directive.
func (e *Extractor) Run(doc *Document, filters []config.Filter) []Item {
	items := make([]Item, 0, len(doc.Items))
	for _, raw := range doc.Items {
		items = append(items, e.resolve(raw))
	}

	items = e.filterer.Run(items, filters)

	for i := range items {
		items[i].Title = Title(items[i].Title, e.limit)
		items[i].Link = SanitizeLink(items[i].Link)
	}

	return items
}

func (e *Extractor) resolve(raw *gofeed.Item) Item {
	for _, r := range e.resolvers {
		if resolved, ok := r.Resolve(raw); ok {
			return resolved
		}
	}
	return Item{}
}

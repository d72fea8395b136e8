package feed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	log "github.com/sirupsen/logrus"
)

// EmbeddedResolver reads title, link and picture out of an HTML blob in the
// item's content, the way reddit and other aggregators publish them.
type EmbeddedResolver struct{}

func NewEmbeddedResolver() *EmbeddedResolver {
	return &EmbeddedResolver{}
}

func (r *EmbeddedResolver) Resolve(item *gofeed.Item) (Item, bool) {
	content := strings.TrimSpace(item.Content)
	if content == "" {
		return Item{}, false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		log.WithError(err).Debug("Embedded content is not parseable HTML")
		return Item{}, false
	}

	img := doc.Find("img[alt]").First()
	title, _ := img.Attr("alt")
	link, _ := doc.Find("a[href]").First().Attr("href")

	title = strings.TrimSpace(title)
	link = strings.TrimSpace(link)
	if title == "" || link == "" {
		return Item{}, false
	}

	resolved := Item{Title: title, Link: link}
	if src, ok := img.Attr("src"); ok && strings.TrimSpace(src) != "" {
		resolved.Media = &MediaRef{URL: strings.TrimSpace(src), Source: SourceEmbedded}
	}

	return resolved, true
}

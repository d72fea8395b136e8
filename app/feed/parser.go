package feed

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html/charset"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run parses RSS or Atom feed bytes. gofeed yields RSS <item> elements for
// RSS documents and <entry> elements for Atom documents, never both.
func (p *Parser) Run(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ParseError{Err: errors.New("document is empty")}
	}

	if err := checkWellFormed(data); err != nil {
		return nil, &ParseError{Err: err}
	}

	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if feed.FeedType != string(KindRSS) && feed.FeedType != string(KindAtom) {
		return nil, &ParseError{Err: fmt.Errorf("unsupported feed type %q", feed.FeedType)}
	}

	items := make([]*gofeed.Item, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item != nil {
			items = append(items, item)
		}
	}

	return &Document{
		Title: feed.Title,
		Kind:  Kind(feed.FeedType),
		Items: items,
	}, nil
}

// checkWellFormed walks every token with a strict decoder. gofeed's own
// reader tolerates mismatched tags and bare ampersands.
func checkWellFormed(data []byte) error {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charset.NewReaderLabel

	elements := 0
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("malformed XML: %w", err)
		}
		if _, ok := token.(xml.StartElement); ok {
			elements++
		}
	}

	if elements == 0 {
		return errors.New("document has no XML root element")
	}
	return nil
}

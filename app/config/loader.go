package config

import (
	"cmp"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of the feeds file
type Loader struct {
	path string
}

// NewLoader creates a new feeds file loader
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads, defaults and validates the feeds file
func (l *Loader) Load() (*FeedsFile, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var file FeedsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	l.setDefaults(&file)

	if err := l.validate(&file); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", l.path, err)
	}

	log.WithFields(log.Fields{
		"path":  l.path,
		"feeds": len(file.Feeds),
	}).Debug("Feeds file loaded")

	return &file, nil
}

// setDefaults applies default values to the feeds file
func (l *Loader) setDefaults(file *FeedsFile) {
	for i := range file.Feeds {
		feed := &file.Feeds[i]
		feed.URL = strings.TrimSpace(feed.URL)
		if feed.Menu == "" {
			feed.Menu = feed.URL
		}
		if feed.Parent == "" {
			feed.Parent = file.Parent
		}
	}
}

var filterFields = []string{"title", "link"}

// validate validates the feeds file
func (l *Loader) validate(file *FeedsFile) error {
	for i, feed := range file.Feeds {
		if feed.URL == "" {
			return fmt.Errorf("feed URL is required at index %d", i)
		}

		for j, filter := range feed.Filters {
			if !lo.Contains(filterFields, filter.Field) {
				return fmt.Errorf("invalid filter field for feed %d at index %d: %s", i, j, filter.Field)
			}
			if len(filter.Includes) == 0 && len(filter.Excludes) == 0 {
				return fmt.Errorf("filter for feed %d at index %d must have at least one include or exclude rule", i, j)
			}
		}
	}

	return nil
}

// Resolve merges the URLs given on the command line with the feeds file.
// Command-line feeds come first. When a menu name is forced and several URLs
// are given, every feed after the first gets a numeric suffix so the menus do
// not destroy each other.
func Resolve(urls []string, o Overrides, file *FeedsFile) []FeedConfig {
	feeds := make([]FeedConfig, 0, len(urls))

	for i, url := range urls {
		url = strings.TrimSpace(url)
		menu := url
		if o.Menu != "" {
			menu = o.Menu
			if i > 0 {
				menu = fmt.Sprintf("%s-%d", o.Menu, i+1)
			}
		}

		feeds = append(feeds, FeedConfig{
			URL:    url,
			Title:  o.Title,
			Menu:   menu,
			Parent: o.Parent,
		})
	}

	if file == nil {
		return feeds
	}

	for _, feed := range file.Feeds {
		if feed.Disabled {
			log.WithField("url", feed.URL).Debug("Feed disabled, skipping")
			continue
		}
		if feed.Parent == "" || (o.Parent != "" && feed.Parent == file.Parent) {
			feed.Parent = cmp.Or(o.Parent, feed.Parent)
		}
		feeds = append(feeds, feed)
	}

	return feeds
}

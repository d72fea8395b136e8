package feed

import (
	"fmt"
	"strings"

	"github.com/lysyi3m/fvwm-rss/app/config"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

// Run returns the items no filter excludes, keeping their order.
func (f *Filterer) Run(items []Item, filters []config.Filter) []Item {
	if len(filters) == 0 {
		return items
	}

	return lo.Filter(items, func(item Item, _ int) bool {
		filtered, reason := f.applyFilters(item, filters)
		if filtered {
			log.WithFields(log.Fields{
				"title":  item.Title,
				"reason": reason,
			}).Debug("Item filtered")
		}
		return !filtered
	})
}

func (f *Filterer) applyFilters(item Item, filters []config.Filter) (bool, string) {
	for _, filter := range filters {
		value := f.getFieldValue(item, filter.Field)

		for _, exclude := range filter.Excludes {
			if f.matchesFilter(value, exclude) {
				return true, fmt.Sprintf("Excluded by %s filter: contains '%s'", filter.Field, exclude)
			}
		}

		if len(filter.Includes) > 0 {
			matched := lo.ContainsBy(filter.Includes, func(include string) bool {
				return f.matchesFilter(value, include)
			})
			if !matched {
				return true, fmt.Sprintf("Excluded by %s filter: does not contain any of %v", filter.Field, filter.Includes)
			}
		}
	}

	return false, ""
}

func (f *Filterer) matchesFilter(value, pattern string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(pattern))
}

func (f *Filterer) getFieldValue(item Item, field string) string {
	switch field {
	case "title":
		return item.Title
	case "link":
		return item.Link
	default:
		return ""
	}
}

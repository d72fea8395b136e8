package feed

import (
	"testing"

	"github.com/lysyi3m/fvwm-rss/app/config"
)

func TestApplyFilters(t *testing.T) {
	filterer := NewFilterer()

	item := Item{
		Title: "Technology News: Latest Updates",
		Link:  "https://example.com/tech-news",
	}

	tests := []struct {
		name     string
		filters  []config.Filter
		expected bool
	}{
		{
			name:     "Include filter matches",
			filters:  []config.Filter{{Field: "title", Includes: []string{"technology"}}},
			expected: false,
		},
		{
			name:     "Include filter doesn't match",
			filters:  []config.Filter{{Field: "title", Includes: []string{"sports"}}},
			expected: true,
		},
		{
			name:     "Exclude filter matches",
			filters:  []config.Filter{{Field: "title", Excludes: []string{"news"}}},
			expected: true,
		},
		{
			name:     "Include and exclude - both match (exclude wins)",
			filters:  []config.Filter{{Field: "title", Includes: []string{"technology"}, Excludes: []string{"news"}}},
			expected: true,
		},
		{
			name:     "Link filter",
			filters:  []config.Filter{{Field: "link", Excludes: []string{"example.com"}}},
			expected: true,
		},
		{
			name:     "Case insensitive matching",
			filters:  []config.Filter{{Field: "title", Includes: []string{"TECHNOLOGY"}}},
			expected: false,
		},
		{
			name: "Multiple filters - one fails",
			filters: []config.Filter{
				{Field: "title", Includes: []string{"technology"}},
				{Field: "link", Includes: []string{"sports"}},
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered, reason := filterer.applyFilters(item, tt.filters)
			if filtered != tt.expected {
				t.Errorf("Expected filtered=%v, got %v. Reason: %s", tt.expected, filtered, reason)
			}
			if filtered && reason == "" {
				t.Error("Expected reason to be provided when item is filtered")
			}
		})
	}
}

func TestFiltererRunWithoutFilters(t *testing.T) {
	items := []Item{{Title: "a"}, {Title: "b"}}

	result := NewFilterer().Run(items, nil)
	if len(result) != 2 {
		t.Errorf("Expected all items kept, got %d", len(result))
	}
}

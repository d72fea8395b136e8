package config

// FeedsFile represents a YAML file listing the feeds to render
type FeedsFile struct {
	Parent string       `yaml:"parent"`
	Feeds  []FeedConfig `yaml:"feeds"`
}

// FeedConfig describes a single feed and how its menu is named
type FeedConfig struct {
	URL      string   `yaml:"url"`
	Title    string   `yaml:"title"`
	Menu     string   `yaml:"menu"`
	Parent   string   `yaml:"parent"`
	Disabled bool     `yaml:"disabled"`
	Filters  []Filter `yaml:"filters"`
}

// Filter represents a content filter rule
type Filter struct {
	Field    string   `yaml:"field"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// Overrides carries the per-run values given on the command line
type Overrides struct {
	Title  string
	Menu   string
	Parent string
}

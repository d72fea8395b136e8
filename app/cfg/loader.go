package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

// minLimit leaves room for at least one character before the ellipsis.
const minLimit = 4

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Menu presentation
	Title         string `short:"t" long:"title" description:"Title for the top-level menu (defaults to the feed title)"`
	Menu          string `short:"m" long:"menu" description:"Name of the menu the feed entries are added to (defaults to the feed URL)"`
	Parent        string `short:"p" long:"parent" description:"Add the generated menu to this parent menu"`
	Browser       string `long:"browser" env:"FVWM_RSS_BROWSER" default:"x-www-browser" description:"Browser command used to open links"`
	BrowserOption string `short:"b" long:"browser-option" env:"FVWM_RSS_BROWSER_OPTION" default:"-incognito" description:"Options passed to the browser when opening a link"`
	Scale         string `short:"s" long:"scale" default:"256x256" description:"Scale enclosure images larger than this down to fit"`
	ThumbScale    string `long:"thumbnail-scale" default:"128x128" description:"Scale thumbnails larger than this down to fit"`
	Limit         int    `short:"l" long:"limit" default:"160" description:"Limit the text length of feed entries"`

	// Sources and output
	ConfigFile   string        `short:"c" long:"config" env:"FVWM_RSS_CONFIG" description:"YAML file listing feeds to render"`
	CachePath    string        `long:"cache" env:"FVWM_RSS_CACHE" description:"SQLite database caching converted images between runs"`
	Print        bool          `long:"print" description:"Print directives to stdout instead of sending them to FVWM"`
	FvwmCommand  string        `long:"fvwm-command" env:"FVWM_COMMAND" default:"FvwmCommand" description:"Command used to talk to the running FVWM"`
	CleanupDelay time.Duration `long:"cleanup-delay" default:"10s" description:"Delay before FVWM removes the generated files"`
	TmpDir       string        `long:"tmp-dir" env:"TMPDIR" description:"Directory for generated files"`

	// Application metadata
	Timeout   time.Duration `long:"timeout" default:"30s" description:"HTTP timeout for feed and image requests"`
	UserAgent string        `long:"user-agent" env:"FVWM_RSS_USER_AGENT" description:"User agent string for HTTP requests"`
	Debug     bool          `long:"debug" env:"DEBUG" description:"Enable debug logging"`

	Args struct {
		URLs []string `positional-arg-name:"url" description:"URL of an RSS or Atom feed"`
	} `positional-args:"yes"`
}

// Load parses command-line arguments and environment variables. It returns
// nil, nil when help was requested.
func Load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)
	parser.Usage = "[OPTIONS] url..."

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		URLs:          raw.Args.URLs,
		Title:         raw.Title,
		Menu:          raw.Menu,
		Parent:        raw.Parent,
		Browser:       raw.Browser,
		BrowserOption: raw.BrowserOption,
		Scale:         raw.Scale,
		ThumbScale:    raw.ThumbScale,
		Limit:         raw.Limit,
		ConfigFile:    raw.ConfigFile,
		CachePath:     raw.CachePath,
		Print:         raw.Print,
		FvwmCommand:   raw.FvwmCommand,
		CleanupDelay:  raw.CleanupDelay,
		TmpDir:        raw.TmpDir,
		Timeout:       raw.Timeout,
		UserAgent:     cmp.Or(raw.UserAgent, "fvwm-rss/"+GetVersion()),
		Debug:         raw.Debug,
		Version:       GetVersion(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Cfg) Validate() error {
	if len(c.URLs) == 0 && c.ConfigFile == "" {
		return fmt.Errorf("at least one feed URL or a config file is required")
	}
	if c.Limit < minLimit {
		return fmt.Errorf("limit must be at least %d, got %d", minLimit, c.Limit)
	}
	if c.Browser == "" {
		return fmt.Errorf("browser command is required")
	}
	if !c.Print && c.FvwmCommand == "" {
		return fmt.Errorf("fvwm command is required unless --print is set")
	}
	if c.CleanupDelay < 0 {
		return fmt.Errorf("cleanup delay must be non-negative")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	return nil
}

package cfg

import "time"

type Cfg struct {
	URLs []string

	// Menu presentation
	Title         string
	Menu          string
	Parent        string
	Browser       string
	BrowserOption string
	Scale         string
	ThumbScale    string
	Limit         int

	// Sources and output
	ConfigFile   string
	CachePath    string
	Print        bool
	FvwmCommand  string
	CleanupDelay time.Duration
	TmpDir       string

	// Application metadata
	Timeout   time.Duration
	UserAgent string
	Debug     bool
	Version   string
}

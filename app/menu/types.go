package menu

// Placement says where FVWM draws an entry's picture relative to its label
type Placement int

const (
	PlacementNone  Placement = iota
	PlacementLeft            // "%pic%" mini icon, used for thumbnails
	PlacementAbove           // "*pic*" side picture above the label, used for enclosures
)

// Entry is one rendered feed item
type Entry struct {
	Title     string
	Link      string
	Picture   string
	Placement Placement
}

// Menu is everything needed to render one feed. Title and entry fields are
// expected to be sanitized already.
type Menu struct {
	ID      string
	Parent  string
	Title   string
	Entries []Entry
}

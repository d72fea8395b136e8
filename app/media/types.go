package media

// Asset is a converted PNG ready to be referenced from a menu entry
type Asset struct {
	Path  string
	MIME  string // subtype of the downloaded file, e.g. "jpeg"
	Bound Bound
}

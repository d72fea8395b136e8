package database

import (
	"time"
)

type MediaAsset struct {
	URL       string
	Bound     string // WIDTHxHEIGHT the asset was scaled to
	Path      string // converted PNG on disk
	MIME      string // subtype of the original download
	CreatedAt time.Time
}

package media

import (
	"fmt"
	"regexp"
	"strconv"
)

var boundPattern = regexp.MustCompile(`^([0-9]+)(?:x([0-9]+))?$`)

// Bound is a WIDTHxHEIGHT ceiling for converted images
type Bound struct {
	Width  int
	Height int
}

// ParseBound accepts "WxH", or "W" for a square bound.
func ParseBound(s string) (Bound, error) {
	m := boundPattern.FindStringSubmatch(s)
	if m == nil {
		return Bound{}, fmt.Errorf("invalid scale %q: expected WIDTHxHEIGHT", s)
	}

	width, err := strconv.Atoi(m[1])
	if err != nil {
		return Bound{}, fmt.Errorf("invalid scale width %q: %w", m[1], err)
	}
	height := width
	if m[2] != "" {
		if height, err = strconv.Atoi(m[2]); err != nil {
			return Bound{}, fmt.Errorf("invalid scale height %q: %w", m[2], err)
		}
	}

	if width <= 0 || height <= 0 {
		return Bound{}, fmt.Errorf("invalid scale %q: dimensions must be positive", s)
	}

	return Bound{Width: width, Height: height}, nil
}

func (b Bound) String() string {
	return fmt.Sprintf("%dx%d", b.Width, b.Height)
}

// Exceeds reports whether an image of the given size must be scaled. Width
// is checked first, height only when the width fits.
func (b Bound) Exceeds(width, height int) bool {
	if width > b.Width {
		return true
	}
	return height > b.Height
}

// Fit returns the largest size within the bound with the aspect ratio of
// width x height. Neither side drops below one pixel.
func (b Bound) Fit(width, height int) (int, int) {
	if width <= 0 || height <= 0 {
		return width, height
	}

	// Compare b.Width/width against b.Height/height without floats.
	if b.Width*height <= b.Height*width {
		return b.Width, max(1, height*b.Width/width)
	}
	return max(1, width*b.Height/height), b.Height
}

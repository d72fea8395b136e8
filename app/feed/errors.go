package feed

import "fmt"

// FetchError covers DNS, connection, timeout and HTTP-level failures
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch feed %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError is returned when the fetched bytes are not a well-formed feed
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse feed: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const acceptHeader = "application/rss+xml, application/atom+xml, application/xml, text/xml;q=0.9, */*;q=0.8"

type Fetcher struct {
	httpClient *http.Client
	userAgent  string
}

func NewFetcher(httpClient *http.Client, userAgent string) *Fetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Fetcher{
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

// Fetch performs a single GET for the feed. Every failure is a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	data, err := f.fetch(ctx, url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return data, nil
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if len(data) == 0 {
		return nil, errors.New("empty response body")
	}

	return data, nil
}

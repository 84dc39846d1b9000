// internal/app/news/fetch.go
package news

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// fetchTimeout bounds a single feed request. A slow feed must not starve
// the rest of the run.
const fetchTimeout = 15 * time.Second

// maxFeedBytes caps the response body read from a feed.
const maxFeedBytes = 4 << 20

// Fetcher retrieves feed documents over HTTP.
type Fetcher struct {
	client *http.Client
}

// NewFetcher returns a Fetcher with the standard per-request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: fetchTimeout}}
}

// Fetch retrieves the feed at url. Any non-2xx status is an error; the
// caller treats it as a per-feed failure, not a run failure.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "cyberhub-news/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch feed: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}
	return body, nil
}

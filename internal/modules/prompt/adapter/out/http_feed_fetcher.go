package out

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	promptout "quill/internal/modules/prompt/port/out"
)

const (
	fetchTimeout = 10 * time.Second
	maxFeedBytes = 2 << 20
)

type HTTPFeedFetcher struct {
	url       string
	userAgent string
	client    *http.Client
}

func NewHTTPFeedFetcher(url, userAgent string) promptout.FeedFetcher {
	return &HTTPFeedFetcher{url: url, userAgent: userAgent, client: &http.Client{Timeout: fetchTimeout}}
}

func (f *HTTPFeedFetcher) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build prompt request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch prompt feed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch prompt feed: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("read prompt feed: %w", err)
	}
	return body, nil
}

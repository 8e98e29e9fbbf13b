package out

import (
	"context"

	"quill/internal/modules/prompt/domain"
)

// FeedFetcher downloads the raw prompt feed.
type FeedFetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// FeedCache keeps the last good feed. Load reports false when nothing is
// cached.
type FeedCache interface {
	Load(ctx context.Context) (domain.Feed, bool, error)
	Store(ctx context.Context, feed domain.Feed) error
}

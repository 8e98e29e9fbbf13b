package out

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/peterbourgon/diskv/v3"

	"quill/internal/modules/prompt/domain"
	promptout "quill/internal/modules/prompt/port/out"
)

const feedKey = "prompt-feed"

// DiskvFeedCache stores the last good feed as JSON under the cache dir.
type DiskvFeedCache struct {
	d *diskv.Diskv
}

func NewDiskvFeedCache(dir string) promptout.FeedCache {
	return &DiskvFeedCache{d: diskv.New(diskv.Options{
		BasePath:     dir,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 512 * 1024,
	})}
}

func (c *DiskvFeedCache) Load(_ context.Context) (domain.Feed, bool, error) {
	if !c.d.Has(feedKey) {
		return domain.Feed{}, false, nil
	}
	raw, err := c.d.Read(feedKey)
	if err != nil {
		return domain.Feed{}, false, fmt.Errorf("read prompt cache: %w", err)
	}
	var feed domain.Feed
	if err := json.Unmarshal(raw, &feed); err != nil {
		return domain.Feed{}, false, fmt.Errorf("decode prompt cache: %w", err)
	}
	return feed, true, nil
}

func (c *DiskvFeedCache) Store(_ context.Context, feed domain.Feed) error {
	raw, err := json.Marshal(feed)
	if err != nil {
		return fmt.Errorf("encode prompt cache: %w", err)
	}
	if err := c.d.Write(feedKey, raw); err != nil {
		return fmt.Errorf("write prompt cache: %w", err)
	}
	return nil
}

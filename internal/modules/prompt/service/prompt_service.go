package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	hclog "github.com/hashicorp/go-hclog"

	"quill/internal/modules/prompt/domain"
	promptout "quill/internal/modules/prompt/port/out"
	"quill/internal/platform/clock"
)

type Source string

const (
	SourceFeed       Source = "feed"
	SourceCache      Source = "cache"
	SourceStaleCache Source = "stale cache"
	SourceBuiltin    Source = "builtin"
)

var ErrFeedDisabled = errors.New("prompt feed url not configured")

type PromptService struct {
	clock   clock.Clock
	fetcher promptout.FeedFetcher
	cache   promptout.FeedCache
	pick    func(n int) int
	logger  hclog.Logger
}

// NewPromptService builds the service. fetcher may be nil when no feed is
// configured; pick may be nil to use math/rand.
func NewPromptService(clock clock.Clock, fetcher promptout.FeedFetcher, cache promptout.FeedCache, pick func(n int) int, logger hclog.Logger) *PromptService {
	if pick == nil {
		pick = rand.IntN
	}
	return &PromptService{clock: clock, fetcher: fetcher, cache: cache, pick: pick, logger: logger}
}

// Prompts serves the cached feed while fresh, refetches when stale, and falls
// back to a stale cache and then the built-in list. Fetch failures are logged,
// never returned.
func (s *PromptService) Prompts(ctx context.Context) ([]string, Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	cached, ok, err := s.cache.Load(ctx)
	if err != nil {
		s.logger.Warn("load prompt cache", "error", err)
		ok = false
	}
	if ok && cached.Fresh(s.clock.Now()) {
		return cached.Prompts, SourceCache, nil
	}
	feed, err := s.Refresh(ctx)
	if err == nil {
		return feed.Prompts, SourceFeed, nil
	}
	if !errors.Is(err, ErrFeedDisabled) {
		s.logger.Warn("refresh prompt feed", "error", err)
	}
	if ok && len(cached.Prompts) > 0 {
		return cached.Prompts, SourceStaleCache, nil
	}
	return domain.Builtins(), SourceBuiltin, nil
}

// Refresh fetches the feed now and caches it. A feed without usable prompts
// is an error and leaves the cache untouched.
func (s *PromptService) Refresh(ctx context.Context) (domain.Feed, error) {
	if s.fetcher == nil {
		return domain.Feed{}, ErrFeedDisabled
	}
	raw, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return domain.Feed{}, err
	}
	prompts, err := domain.ParseFeed(raw)
	if err != nil {
		return domain.Feed{}, err
	}
	if len(prompts) == 0 {
		return domain.Feed{}, fmt.Errorf("prompt feed had no usable prompts")
	}
	feed := domain.Feed{Prompts: prompts, FetchedAt: s.clock.Now()}
	if err := s.cache.Store(ctx, feed); err != nil {
		s.logger.Warn("store prompt cache", "error", err)
	}
	s.logger.Debug("prompt feed refreshed", "count", len(prompts))
	return feed, nil
}

func (s *PromptService) Random(ctx context.Context) (string, error) {
	prompts, _, err := s.Prompts(ctx)
	if err != nil {
		return "", err
	}
	if len(prompts) == 0 {
		prompts = domain.Builtins()
	}
	return prompts[s.pick(len(prompts))], nil
}

package service

import (
	"context"
	"errors"
	"strings"

	"storescan-go/pkg/keyword"
	"storescan-go/pkg/naver"
	"storescan-go/pkg/report"
	"storescan-go/pkg/storage"
)

// VolumeAdapter exposes the keyword tool client through the pipeline's
// lookup interface.
type VolumeAdapter struct {
	Client *naver.KeywordToolClient
}

func (a VolumeAdapter) Lookup(ctx context.Context, hints []string) ([]keyword.VolumeResult, error) {
	stats, err := a.Client.RelatedKeywords(ctx, hints)
	if err != nil {
		return nil, err
	}
	results := make([]keyword.VolumeResult, 0, len(stats))
	for _, stat := range stats {
		results = append(results, keyword.VolumeResult{
			Keyword:     stat.RelKeyword,
			Volume:      stat.TotalVolume(),
			Competition: keyword.ParseCompetition(stat.CompIdx),
		})
	}
	return results, nil
}

// UnavailableVolume stands in when keyword tool credentials are missing.
// Every lookup fails, which pushes validation onto the estimation fallback.
type UnavailableVolume struct{}

func (UnavailableVolume) Lookup(context.Context, []string) ([]keyword.VolumeResult, error) {
	return nil, errors.New("keyword tool client is not configured")
}

// cachedVolumeClient memoizes batch lookups for the cache TTL. A miss always
// falls through to the live client.
type cachedVolumeClient struct {
	inner keyword.VolumeClient
	cache *storage.MemoryCache
}

func withVolumeCache(inner keyword.VolumeClient, cache *storage.MemoryCache) keyword.VolumeClient {
	if cache == nil {
		return inner
	}
	return &cachedVolumeClient{inner: inner, cache: cache}
}

func (c *cachedVolumeClient) Lookup(ctx context.Context, hints []string) ([]keyword.VolumeResult, error) {
	key := "volume:" + strings.Join(hints, "|")
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]keyword.VolumeResult), nil
	}
	results, err := c.inner.Lookup(ctx, hints)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, results)
	return results, nil
}

// cachedSearcher memoizes blog-search responses per keyword.
type cachedSearcher struct {
	inner report.BlogSearcher
	cache *storage.MemoryCache
}

func withSearchCache(inner report.BlogSearcher, cache *storage.MemoryCache) report.BlogSearcher {
	if inner == nil || cache == nil {
		return inner
	}
	return &cachedSearcher{inner: inner, cache: cache}
}

func (c *cachedSearcher) Search(ctx context.Context, kw string) (*naver.BlogSearchResult, error) {
	key := "blog:" + kw
	if cached, ok := c.cache.Get(key); ok {
		return cached.(*naver.BlogSearchResult), nil
	}
	result, err := c.inner.Search(ctx, kw)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, result)
	return result, nil
}

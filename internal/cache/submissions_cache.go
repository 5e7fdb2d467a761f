package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mbsnyc/mbsnyc-api/internal/models"
	"github.com/mbsnyc/mbsnyc-api/pkg/logger"
	"github.com/mbsnyc/mbsnyc-api/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const submissionsCacheName = "contact_submissions"

// SubmissionsFetcher loads a page of submissions from the backing store
type SubmissionsFetcher func(ctx context.Context, opts models.ContactListOptions) ([]*models.ContactSubmission, error)

// SubmissionsCache keeps recently listed pages of contact submissions.
// Any new submission invalidates every page.
type SubmissionsCache struct {
	cache   *gocache.Cache
	fetcher SubmissionsFetcher
	ttl     time.Duration

	// generation is bumped by Invalidate; a page fetched across a bump is not stored
	mu         sync.Mutex
	generation uint64
}

// NewSubmissionsCache creates a cache whose pages expire after ttlSeconds.
// A non-positive ttl disables caching; every Get goes to the fetcher.
func NewSubmissionsCache(fetcher SubmissionsFetcher, ttlSeconds int) *SubmissionsCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	cleanup := 2 * ttl
	if cleanup <= 0 {
		cleanup = time.Minute
	}

	return &SubmissionsCache{
		cache:   gocache.New(ttl, cleanup),
		fetcher: fetcher,
		ttl:     ttl,
	}
}

func pageKey(opts models.ContactListOptions) string {
	return fmt.Sprintf("limit=%d:offset=%d", opts.Limit, opts.Offset)
}

// Get returns a page from cache or fetches it on a miss
func (sc *SubmissionsCache) Get(ctx context.Context, opts models.ContactListOptions) ([]*models.ContactSubmission, error) {
	opts = opts.Normalize()
	key := pageKey(opts)

	if sc.ttl > 0 {
		if data, found := sc.cache.Get(key); found {
			if page, ok := data.([]*models.ContactSubmission); ok {
				metrics.CacheHits.WithLabelValues(submissionsCacheName).Inc()
				return page, nil
			}
			logger.Error("Invalid submissions cache data type", zap.String("key", key))
			sc.cache.Delete(key)
		}
	}

	metrics.CacheMisses.WithLabelValues(submissionsCacheName).Inc()

	generation := sc.currentGeneration()
	page, err := sc.fetcher(ctx, opts)
	if err != nil {
		return nil, err
	}

	if sc.ttl > 0 {
		sc.mu.Lock()
		if sc.generation == generation {
			sc.cache.Set(key, page, sc.ttl)
		} else {
			logger.Debug("Submissions cache invalidated during fetch, page not stored", zap.String("key", key))
		}
		sc.mu.Unlock()
	}
	return page, nil
}

// Invalidate drops every cached page
func (sc *SubmissionsCache) Invalidate() {
	sc.mu.Lock()
	sc.generation++
	sc.cache.Flush()
	sc.mu.Unlock()
	logger.Debug("Submissions cache invalidated")
}

func (sc *SubmissionsCache) currentGeneration() uint64 {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.generation
}

// Len returns the number of cached pages
func (sc *SubmissionsCache) Len() int {
	return sc.cache.ItemCount()
}

package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/mbsnyc/mbsnyc-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFetcher struct {
	calls []models.ContactListOptions
	page  []*models.ContactSubmission
	err   error
}

func (f *countingFetcher) fetch(_ context.Context, opts models.ContactListOptions) ([]*models.ContactSubmission, error) {
	f.calls = append(f.calls, opts)
	return f.page, f.err
}

func TestSubmissionsCache_HitAfterMiss(t *testing.T) {
	fetcher := &countingFetcher{page: []*models.ContactSubmission{{ID: "a"}}}
	sc := NewSubmissionsCache(fetcher.fetch, 60)
	ctx := context.Background()

	first, err := sc.Get(ctx, models.ContactListOptions{})
	require.NoError(t, err)
	second, err := sc.Get(ctx, models.ContactListOptions{Limit: models.DefaultContactListLimit})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, fetcher.calls, 1)
	assert.Equal(t, models.DefaultContactListLimit, fetcher.calls[0].Limit)
	assert.Equal(t, 1, sc.Len())
}

func TestSubmissionsCache_PagesAreKeyedSeparately(t *testing.T) {
	fetcher := &countingFetcher{}
	sc := NewSubmissionsCache(fetcher.fetch, 60)
	ctx := context.Background()

	_, _ = sc.Get(ctx, models.ContactListOptions{Limit: 10})
	_, _ = sc.Get(ctx, models.ContactListOptions{Limit: 10, Offset: 10})

	assert.Len(t, fetcher.calls, 2)
	assert.Equal(t, 2, sc.Len())
}

func TestSubmissionsCache_Invalidate(t *testing.T) {
	fetcher := &countingFetcher{}
	sc := NewSubmissionsCache(fetcher.fetch, 60)
	ctx := context.Background()

	_, _ = sc.Get(ctx, models.ContactListOptions{})
	sc.Invalidate()
	assert.Equal(t, 0, sc.Len())

	_, _ = sc.Get(ctx, models.ContactListOptions{})
	assert.Len(t, fetcher.calls, 2)
}

func TestSubmissionsCache_ErrorsAreNotCached(t *testing.T) {
	fetcher := &countingFetcher{err: errors.New("db down")}
	sc := NewSubmissionsCache(fetcher.fetch, 60)
	ctx := context.Background()

	_, err := sc.Get(ctx, models.ContactListOptions{})
	assert.EqualError(t, err, "db down")
	assert.Equal(t, 0, sc.Len())
}

func TestSubmissionsCache_DisabledWithZeroTTL(t *testing.T) {
	fetcher := &countingFetcher{}
	sc := NewSubmissionsCache(fetcher.fetch, 0)
	ctx := context.Background()

	_, _ = sc.Get(ctx, models.ContactListOptions{})
	_, _ = sc.Get(ctx, models.ContactListOptions{})

	assert.Len(t, fetcher.calls, 2)
	assert.Equal(t, 0, sc.Len())
}

func TestSubmissionsCache_InvalidateDuringFetchDropsStalePage(t *testing.T) {
	var sc *SubmissionsCache
	calls := 0
	sc = NewSubmissionsCache(func(_ context.Context, _ models.ContactListOptions) ([]*models.ContactSubmission, error) {
		calls++
		if calls == 1 {
			// a submission lands while the first page is being read
			sc.Invalidate()
			return []*models.ContactSubmission{{ID: "old"}}, nil
		}
		return []*models.ContactSubmission{{ID: "new"}, {ID: "old"}}, nil
	}, 60)
	ctx := context.Background()

	stale, err := sc.Get(ctx, models.ContactListOptions{})
	require.NoError(t, err)
	assert.Len(t, stale, 1)
	assert.Equal(t, 0, sc.Len())

	fresh, err := sc.Get(ctx, models.ContactListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, fresh, 2)
	assert.Equal(t, "new", fresh[0].ID)
	assert.Equal(t, 1, sc.Len())
}

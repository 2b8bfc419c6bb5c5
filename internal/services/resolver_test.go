package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mkravets/link-shortener/internal/models"
	"github.com/mkravets/link-shortener/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLinks(t *testing.T) (*Links, *storage.MemoryStore, *storage.MemoryCache) {
	t.Helper()
	store := &storage.MemoryStore{}
	require.NoError(t, store.Initialize())
	cache := storage.NewMemoryCache()
	resolver := &Resolver{Store: store, Cache: cache}
	links := &Links{
		Store:     store,
		Cache:     cache,
		Generator: &Generator{Store: store, MaxAttempts: 10},
		Resolver:  resolver,
	}
	return links, store, cache
}

func cachedLink(t *testing.T, cache *storage.MemoryCache, key string) *models.Link {
	t.Helper()
	value, err := cache.Get(context.Background(), key)
	require.NoError(t, err)
	var link models.Link
	require.NoError(t, json.Unmarshal(value, &link))
	return &link
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	links, store, cache := testLinks(t)

	link, err := links.Create(ctx, uuid.New(), "https://example.com")
	require.NoError(t, err)

	// Lazy caching: nothing cached until the first resolution.
	exists, err := cache.Exists(ctx, link.ShortURL)
	require.NoError(t, err)
	assert.False(t, exists)

	originalURL, err := links.Resolver.Resolve(ctx, link.ShortURL)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", originalURL)

	stored, err := store.FindByShortURL(ctx, link.ShortURL)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Stats)
	assert.Equal(t, models.StatusActive, stored.Status)
	assert.True(t, stored.ExpiresAt.After(link.ExpiresAt.Add(-time.Minute)))

	cached := cachedLink(t, cache, link.ShortURL)
	assert.Equal(t, int64(1), cached.Stats)

	_, err = links.Resolver.Resolve(ctx, link.ShortURL)
	require.NoError(t, err)
	stored, err = store.FindByShortURL(ctx, link.ShortURL)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.Stats)
}

func TestResolveNotFound(t *testing.T) {
	links, _, _ := testLinks(t)
	_, err := links.Resolver.Resolve(context.Background(), "missing1")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestResolveExpired(t *testing.T) {
	ctx := context.Background()
	links, store, cache := testLinks(t)

	link, err := links.Create(ctx, uuid.New(), "https://example.com")
	require.NoError(t, err)

	link.ExpiresAt = time.Now().Add(-time.Hour)
	require.NoError(t, store.Update(ctx, link))

	_, err = links.Resolver.Resolve(ctx, link.ShortURL)
	assert.ErrorIs(t, err, models.ErrInactiveLink)

	stored, err := store.FindByShortURL(ctx, link.ShortURL)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, stored.Status)
	assert.Equal(t, int64(0), stored.Stats)

	cached := cachedLink(t, cache, link.ShortURL)
	assert.Equal(t, models.StatusInactive, cached.Status)
}

func TestResolveInactiveStatus(t *testing.T) {
	ctx := context.Background()
	links, store, _ := testLinks(t)

	link, err := links.Create(ctx, uuid.New(), "https://example.com")
	require.NoError(t, err)

	link.Status = models.StatusInactive
	require.NoError(t, store.Update(ctx, link))

	_, err = links.Resolver.Resolve(ctx, link.ShortURL)
	assert.ErrorIs(t, err, models.ErrInactiveLink)
}

func TestResolveStaleCacheSelfCorrects(t *testing.T) {
	ctx := context.Background()
	links, store, cache := testLinks(t)

	link, err := links.Create(ctx, uuid.New(), "https://example.com")
	require.NoError(t, err)

	// Plant a stale cached snapshot that still claims ACTIVE but whose
	// deadline has passed. The resolve must trust the deadline, flip the
	// record and persist the flip through both tiers.
	stale := *link
	stale.ExpiresAt = time.Now().Add(-time.Minute)
	value, err := json.Marshal(&stale)
	require.NoError(t, err)
	require.NoError(t, cache.Set(ctx, link.ShortURL, value))

	_, err = links.Resolver.Resolve(ctx, link.ShortURL)
	assert.ErrorIs(t, err, models.ErrInactiveLink)

	cached := cachedLink(t, cache, link.ShortURL)
	assert.Equal(t, models.StatusInactive, cached.Status)

	stored, err := store.FindByShortURL(ctx, link.ShortURL)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, stored.Status)
}

func TestRenameCached(t *testing.T) {
	ctx := context.Background()
	links, _, cache := testLinks(t)

	// Absent old key: no-op, no error.
	require.NoError(t, links.Resolver.RenameCached(ctx, "absent12", "whatever"))
	exists, err := cache.Exists(ctx, "whatever")
	require.NoError(t, err)
	assert.False(t, exists)

	link, err := links.Create(ctx, uuid.New(), "https://example.com")
	require.NoError(t, err)
	_, err = links.Resolver.Resolve(ctx, link.ShortURL)
	require.NoError(t, err)

	require.NoError(t, links.Resolver.RenameCached(ctx, link.ShortURL, "newkey12"))

	exists, err = cache.Exists(ctx, link.ShortURL)
	require.NoError(t, err)
	assert.False(t, exists)

	cached := cachedLink(t, cache, "newkey12")
	assert.Equal(t, "https://example.com", cached.OriginalURL)
}

func TestOverwriteCached(t *testing.T) {
	ctx := context.Background()
	links, _, cache := testLinks(t)

	link, err := links.Create(ctx, uuid.New(), "https://example.com")
	require.NoError(t, err)

	// Not cached yet: overwrite must not create the entry.
	require.NoError(t, links.Resolver.OverwriteCached(ctx, link.ShortURL, link))
	exists, err := cache.Exists(ctx, link.ShortURL)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = links.Resolver.Resolve(ctx, link.ShortURL)
	require.NoError(t, err)

	link.Stats = 99
	require.NoError(t, links.Resolver.OverwriteCached(ctx, link.ShortURL, link))
	cached := cachedLink(t, cache, link.ShortURL)
	assert.Equal(t, int64(99), cached.Stats)
}

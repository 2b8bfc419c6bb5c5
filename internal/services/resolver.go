package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mkravets/link-shortener/internal/logger"
	"github.com/mkravets/link-shortener/internal/models"
	"github.com/mkravets/link-shortener/internal/storage"
)

// Resolver is the resolution engine: cache-first lookup, lazy expiration
// reconciliation and statistics tracking over the two tiers.
type Resolver struct {
	Store storage.Store
	Cache storage.Cache
}

// Resolve maps a short URL to its original URL.
//
// Lookup order is cache first, store on miss. A persisted INACTIVE status
// fails immediately. The expiration check runs even for cache hits, so a
// stale cached "active" snapshot self-corrects: the link is flipped to
// INACTIVE, the flip is written to both tiers and ErrInactiveLink is
// returned. On success the usage counter is incremented, the expiration
// deadline is reset to now+1 month and the updated record is written back
// to both tiers.
//
// Concurrent resolutions of the same short URL may race on the counter
// (last writer wins). A conditional UPDATE keyed on stats/expires_at at
// the store layer would close that window if exact counts become a
// requirement.
func (r *Resolver) Resolve(ctx context.Context, shortURL string) (string, error) {
	link, err := r.lookup(ctx, shortURL)
	if err != nil {
		return "", err
	}

	if link.Status == models.StatusInactive {
		return "", models.ErrInactiveLink
	}

	now := time.Now()
	if link.Expired(now) {
		link.Status = models.StatusInactive
		r.writeBack(ctx, link)
		return "", models.ErrInactiveLink
	}

	link.Stats++
	link.ExpiresAt = now.AddDate(0, 1, 0)
	r.writeBack(ctx, link)

	return link.OriginalURL, nil
}

// RenameCached moves the cache entry from oldShortURL to newShortURL. A
// key rename rather than delete+insert, so there is no window where the
// record is cached under neither key. No-op when the old key is absent.
func (r *Resolver) RenameCached(ctx context.Context, oldShortURL, newShortURL string) error {
	exists, err := r.Cache.Exists(ctx, oldShortURL)
	if err != nil || !exists {
		return err
	}
	return r.Cache.Rename(ctx, oldShortURL, newShortURL)
}

// OverwriteCached replaces the cached record for shortURL if that key is
// currently cached; used after partial-field updates to keep the cached
// copy authoritative without forcing a rebuild.
func (r *Resolver) OverwriteCached(ctx context.Context, shortURL string, link *models.Link) error {
	exists, err := r.Cache.Exists(ctx, shortURL)
	if err != nil || !exists {
		return err
	}
	value, err := json.Marshal(link)
	if err != nil {
		return err
	}
	return r.Cache.Set(ctx, shortURL, value)
}

func (r *Resolver) lookup(ctx context.Context, shortURL string) (*models.Link, error) {
	exists, err := r.Cache.Exists(ctx, shortURL)
	if err == nil && exists {
		value, err := r.Cache.Get(ctx, shortURL)
		if err == nil {
			var link models.Link
			if err := json.Unmarshal(value, &link); err == nil {
				return &link, nil
			}
		}
	}
	return r.Store.FindByShortURL(ctx, shortURL)
}

// writeBack persists the record to both tiers. Failures are logged, not
// surfaced: the store write is authoritative and every read revalidates,
// so a missed write self-heals on the next resolution.
func (r *Resolver) writeBack(ctx context.Context, link *models.Link) {
	if value, err := json.Marshal(link); err == nil {
		if err := r.Cache.Set(ctx, link.ShortURL, value); err != nil && logger.Log != nil {
			logger.Log.Warnw("cache write-back failed", "short_url", link.ShortURL, "error", err)
		}
	}
	if err := r.Store.Update(ctx, link); err != nil && logger.Log != nil {
		logger.Log.Warnw("store write-back failed", "short_url", link.ShortURL, "error", err)
	}
}

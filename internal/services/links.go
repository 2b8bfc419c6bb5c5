package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mkravets/link-shortener/internal/logger"
	"github.com/mkravets/link-shortener/internal/models"
	"github.com/mkravets/link-shortener/internal/storage"
	"github.com/mkravets/link-shortener/internal/util"
)

// Links is the lifecycle manager: creation, rename and deletion, keeping
// the cache tier coherent with the store on every mutation.
type Links struct {
	Store     storage.Store
	Cache     storage.Cache
	Generator *Generator
	Resolver  *Resolver
}

// Create validates the URL, obtains a unique short code and inserts an
// ACTIVE record with zero stats and a one-month expiration window. The
// cache is not pre-populated; records enter it on first resolution.
func (l *Links) Create(ctx context.Context, ownerID uuid.UUID, rawURL string) (*models.Link, error) {
	if ownerID == uuid.Nil {
		return nil, models.ErrInvalidArgument
	}

	originalURL, err := util.ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	shortURL, err := l.Generator.Generate(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	link := &models.Link{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		ShortURL:    shortURL,
		OriginalURL: originalURL,
		CreatedAt:   now,
		ExpiresAt:   now.AddDate(0, 1, 0),
		Stats:       0,
		Status:      models.StatusActive,
	}

	if err := l.Store.Insert(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// Delete removes the record from both tiers. Cache removal happens first
// so no cache entry can outlive the row; a missing cache key is a no-op.
// The store delete is authoritative regardless of the cache outcome.
func (l *Links) Delete(ctx context.Context, shortURL string, requesterID uuid.UUID) error {
	if requesterID == uuid.Nil {
		return models.ErrInvalidArgument
	}

	link, err := l.Store.FindByShortURL(ctx, shortURL)
	if err != nil {
		return err
	}
	if link.OwnerID != requesterID {
		return models.ErrForbidden
	}

	if err := l.Cache.Remove(ctx, shortURL); err != nil {
		return err
	}
	return l.Store.Delete(ctx, link)
}

// Rename assigns a new short URL to an existing record: store update
// first, then a cache-side key rename followed by an overwrite so the
// cached copy carries the new short URL.
func (l *Links) Rename(ctx context.Context, shortURL, newShortURL string, requesterID uuid.UUID) (*models.Link, error) {
	if requesterID == uuid.Nil || !util.IsShortURL(newShortURL) {
		return nil, models.ErrInvalidArgument
	}

	taken, err := l.Store.ShortURLExists(ctx, newShortURL)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.ErrConflict
	}

	link, err := l.Store.FindByShortURL(ctx, shortURL)
	if err != nil {
		return nil, err
	}
	if link.OwnerID != requesterID {
		return nil, models.ErrForbidden
	}

	link.ShortURL = newShortURL
	if err := l.Store.Update(ctx, link); err != nil {
		return nil, err
	}
	if err := l.Resolver.RenameCached(ctx, shortURL, newShortURL); err != nil {
		return nil, err
	}
	if err := l.Resolver.OverwriteCached(ctx, newShortURL, link); err != nil {
		return nil, err
	}
	return link, nil
}

// FindAllByOwner returns every record for the owner after a lazy status
// reconciliation pass.
func (l *Links) FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Link, error) {
	if ownerID == uuid.Nil {
		return nil, models.ErrInvalidArgument
	}

	links, err := l.Store.FindAllByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	l.fixStatuses(ctx, links)
	return links, nil
}

// FindAllActiveByOwner returns the owner's active records; any record
// whose deadline has passed is flipped, persisted and excluded.
func (l *Links) FindAllActiveByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Link, error) {
	if ownerID == uuid.Nil {
		return nil, models.ErrInvalidArgument
	}

	links, err := l.Store.FindAllActiveByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	fixed := l.fixStatuses(ctx, links)
	if fixed == 0 {
		return links, nil
	}

	active := links[:0]
	for _, link := range links {
		if link.Status == models.StatusActive {
			active = append(active, link)
		}
	}
	return active, nil
}

// fixStatuses flips expired records to INACTIVE in place, persists the
// flip and refreshes any cached copy. Returns the number of records fixed.
func (l *Links) fixStatuses(ctx context.Context, links []models.Link) int {
	now := time.Now()
	fixed := 0
	for i := range links {
		if links[i].Status == models.StatusActive && links[i].Expired(now) {
			links[i].Status = models.StatusInactive
			if err := l.Store.Update(ctx, &links[i]); err != nil && logger.Log != nil {
				logger.Log.Warnw("status fix failed", "short_url", links[i].ShortURL, "error", err)
			}
			_ = l.Resolver.OverwriteCached(ctx, links[i].ShortURL, &links[i])
			fixed++
		}
	}
	return fixed
}

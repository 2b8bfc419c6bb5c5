package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/mkravets/link-shortener/internal/models"
)

// Store is the durable source of truth for link records.
type Store interface {
	Initialize() error
	FindByShortURL(ctx context.Context, shortURL string) (*models.Link, error)
	FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Link, error)
	FindAllActiveByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Link, error)
	Insert(ctx context.Context, link *models.Link) error
	Update(ctx context.Context, link *models.Link) error
	Delete(ctx context.Context, link *models.Link) error
	ShortURLExists(ctx context.Context, shortURL string) (bool, error)
}

// MemoryStore keeps records in a map keyed by link ID. It backs tests and
// DSN-less runs.
type MemoryStore struct {
	mu    sync.RWMutex
	links map[uuid.UUID]models.Link
}

func (store *MemoryStore) Initialize() error {
	store.links = map[uuid.UUID]models.Link{}
	return nil
}

func (store *MemoryStore) FindByShortURL(_ context.Context, shortURL string) (*models.Link, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	for _, link := range store.links {
		if link.ShortURL == shortURL {
			found := link
			return &found, nil
		}
	}
	return nil, models.ErrNotFound
}

func (store *MemoryStore) FindAllByOwner(_ context.Context, ownerID uuid.UUID) ([]models.Link, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	var links []models.Link
	for _, link := range store.links {
		if link.OwnerID == ownerID {
			links = append(links, link)
		}
	}
	return links, nil
}

func (store *MemoryStore) FindAllActiveByOwner(_ context.Context, ownerID uuid.UUID) ([]models.Link, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	var links []models.Link
	for _, link := range store.links {
		if link.OwnerID == ownerID && link.Status == models.StatusActive {
			links = append(links, link)
		}
	}
	return links, nil
}

func (store *MemoryStore) Insert(_ context.Context, link *models.Link) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, existing := range store.links {
		if existing.ShortURL == link.ShortURL {
			return models.ErrConflict
		}
	}
	store.links[link.ID] = *link
	return nil
}

func (store *MemoryStore) Update(_ context.Context, link *models.Link) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.links[link.ID]; !ok {
		return models.ErrNotFound
	}
	store.links[link.ID] = *link
	return nil
}

func (store *MemoryStore) Delete(_ context.Context, link *models.Link) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.links[link.ID]; !ok {
		return models.ErrNotFound
	}
	delete(store.links, link.ID)
	return nil
}

func (store *MemoryStore) ShortURLExists(_ context.Context, shortURL string) (bool, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	for _, link := range store.links {
		if link.ShortURL == shortURL {
			return true, nil
		}
	}
	return false, nil
}

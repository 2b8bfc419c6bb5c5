package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mkravets/link-shortener/internal/models"
	"github.com/mkravets/link-shortener/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestGenerateUnique(t *testing.T) {
	const n = 200
	ctx := context.Background()
	store := &storage.MemoryStore{}
	require.NoError(t, store.Initialize())
	generator := &Generator{Store: store, MaxAttempts: 10}

	var mu sync.Mutex
	codes := make(map[string]struct{}, n)

	g := new(errgroup.Group)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			code, err := generator.Generate(ctx)
			if err != nil {
				return err
			}
			now := time.Now()
			if err := store.Insert(ctx, &models.Link{
				ID:          uuid.New(),
				OwnerID:     uuid.New(),
				ShortURL:    code,
				OriginalURL: "https://example.com",
				CreatedAt:   now,
				ExpiresAt:   now.AddDate(0, 1, 0),
				Status:      models.StatusActive,
			}); err != nil {
				return err
			}
			mu.Lock()
			codes[code] = struct{}{}
			mu.Unlock()
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Len(t, codes, n)
}

type collidingStore struct {
	*storage.MemoryStore
}

func (s *collidingStore) ShortURLExists(context.Context, string) (bool, error) {
	return true, nil
}

func TestGenerateExhausted(t *testing.T) {
	memory := &storage.MemoryStore{}
	require.NoError(t, memory.Initialize())
	generator := &Generator{Store: &collidingStore{memory}, MaxAttempts: 3}

	_, err := generator.Generate(context.Background())
	assert.ErrorIs(t, err, models.ErrGenerationExhausted)
}

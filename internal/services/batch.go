package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mkravets/link-shortener/internal/models"
	"golang.org/x/sync/errgroup"
)

const workerCount = 5

// BatchDelete removes many of an owner's short URLs concurrently. Codes
// that are already gone are skipped, so repeated bulk cleanups are
// idempotent; a foreign or otherwise failing code aborts the batch.
func BatchDelete(links *Links, ctx context.Context, requesterID uuid.UUID, shortURLs []string) error {
	if requesterID == uuid.Nil {
		return models.ErrInvalidArgument
	}

	urlCh := urlsChannel(shortURLs)
	g := new(errgroup.Group)

	for i := 0; i < workerCount; i++ {
		g.Go(func() error {
			for shortURL := range urlCh {
				err := links.Delete(ctx, shortURL, requesterID)
				if err != nil && !errors.Is(err, models.ErrNotFound) {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}

func urlsChannel(shortURLs []string) chan string {
	channel := make(chan string, workerCount)
	go func() {
		defer close(channel)
		for _, shortURL := range shortURLs {
			channel <- shortURL
		}
	}()
	return channel
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type LinkStatus string

const (
	StatusActive   LinkStatus = "ACTIVE"
	StatusInactive LinkStatus = "INACTIVE"
)

// Link is the central record: a short code mapped to its original URL,
// with usage statistics and a rolling expiration deadline. Status is
// derived from ExpiresAt but persisted, so cached copies carry a
// consistent snapshot.
type Link struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	OwnerID     uuid.UUID  `json:"owner_id" db:"owner_id"`
	ShortURL    string     `json:"short_url" db:"short_url"`
	OriginalURL string     `json:"original_url" db:"original_url"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	ExpiresAt   time.Time  `json:"expires_at" db:"expires_at"`
	Stats       int64      `json:"stats" db:"stats"`
	Status      LinkStatus `json:"status" db:"status"`
}

// Expired reports whether the link's deadline has passed. The boundary is
// before-or-equal: a link expiring exactly at now is already expired.
func (l *Link) Expired(now time.Time) bool {
	return !l.ExpiresAt.After(now)
}

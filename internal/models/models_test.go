package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkRoundTrip(t *testing.T) {
	now := time.Now()
	link := Link{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		ShortURL:    "abcDEF12",
		OriginalURL: "https://example.com/some/long/path",
		CreatedAt:   now,
		ExpiresAt:   now.AddDate(0, 1, 0),
		Stats:       42,
		Status:      StatusActive,
	}

	data, err := json.Marshal(link)
	require.NoError(t, err)

	var got Link
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, link.ID, got.ID)
	assert.Equal(t, link.OwnerID, got.OwnerID)
	assert.Equal(t, link.ShortURL, got.ShortURL)
	assert.Equal(t, link.OriginalURL, got.OriginalURL)
	assert.True(t, link.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, link.ExpiresAt.Equal(got.ExpiresAt))
	assert.Equal(t, link.Stats, got.Stats)
	assert.Equal(t, link.Status, got.Status)
}

func TestLinkExpired(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{"in the future", now.Add(time.Hour), false},
		{"exactly now", now, true},
		{"in the past", now.Add(-time.Hour), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := Link{ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, link.Expired(now))
		})
	}
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// WatchEntry is a single watched ticker. The watchlist is the only
// persisted state this service keeps.
type WatchEntry struct {
	ID        uuid.UUID `json:"id"`
	Ticker    string    `json:"ticker"`
	CreatedAt time.Time `json:"created_at"`
}

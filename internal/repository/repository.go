package repository

import (
	"fmt"

	"github.com/yourusername/stock-sentry/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Watchlist WatchlistRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Watchlist: NewPostgresWatchlistRepository(db),
	}, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yourusername/stock-sentry/internal/database"
	"github.com/yourusername/stock-sentry/internal/models"
)

// PostgresWatchlistRepository implements WatchlistRepository for PostgreSQL
type PostgresWatchlistRepository struct {
	db *database.DB
}

// NewPostgresWatchlistRepository creates a new watchlist repository
func NewPostgresWatchlistRepository(db *database.DB) WatchlistRepository {
	return &PostgresWatchlistRepository{db: db}
}

// EnsureSchema creates the watchlist table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS watchlist (
			id UUID PRIMARY KEY,
			ticker TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := db.GetPool().Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create watchlist table: %w", err)
	}
	return nil
}

// Add inserts a new watch entry
func (r *PostgresWatchlistRepository) Add(ctx context.Context, ticker string) (*models.WatchEntry, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, models.ErrInvalidTicker
	}

	entry := &models.WatchEntry{
		ID:        uuid.New(),
		Ticker:    ticker,
		CreatedAt: time.Now().UTC(),
	}

	query := `INSERT INTO watchlist (id, ticker, created_at) VALUES ($1, $2, $3)`
	if _, err := r.db.GetPool().Exec(ctx, query, entry.ID, entry.Ticker, entry.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, models.ErrDuplicateTicker
		}
		return nil, fmt.Errorf("failed to add watch entry: %w", err)
	}

	return entry, nil
}

// Remove deletes a watch entry by ticker
func (r *PostgresWatchlistRepository) Remove(ctx context.Context, ticker string) error {
	query := `DELETE FROM watchlist WHERE ticker = $1`
	tag, err := r.db.GetPool().Exec(ctx, query, strings.ToUpper(strings.TrimSpace(ticker)))
	if err != nil {
		return fmt.Errorf("failed to remove watch entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// GetByTicker retrieves a watch entry by ticker
func (r *PostgresWatchlistRepository) GetByTicker(ctx context.Context, ticker string) (*models.WatchEntry, error) {
	query := `SELECT id, ticker, created_at FROM watchlist WHERE ticker = $1`

	entry := &models.WatchEntry{}
	err := r.db.GetPool().QueryRow(ctx, query, strings.ToUpper(strings.TrimSpace(ticker))).Scan(
		&entry.ID, &entry.Ticker, &entry.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get watch entry: %w", err)
	}

	return entry, nil
}

// List retrieves every watch entry in insertion order
func (r *PostgresWatchlistRepository) List(ctx context.Context) ([]*models.WatchEntry, error) {
	query := `SELECT id, ticker, created_at FROM watchlist ORDER BY created_at ASC`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	defer rows.Close()

	var entries []*models.WatchEntry
	for rows.Next() {
		entry := &models.WatchEntry{}
		if err := rows.Scan(&entry.ID, &entry.Ticker, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan watch entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

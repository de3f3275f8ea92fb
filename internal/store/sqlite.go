package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/kryptocritics/kryptocritics/internal/store/migrations"
)

// Local is the SQLite-backed store: the offline wishlist plus a small
// metadata key/value table for session tokens and the cached username.
type Local struct {
	db *sql.DB
}

var _ WishlistStore = (*Local)(nil)

// RunMigrations applies the embedded goose migrations. Safe to call on an
// already-migrated database.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// OpenLocal opens (creating if needed) the local database at dsn and brings
// its schema up to date.
func OpenLocal(ctx context.Context, dsn string) (*Local, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open local db: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate local db: %w", err)
	}
	return &Local{db: db}, nil
}

func (l *Local) Close() error {
	return l.db.Close()
}

// Get returns the metadata value for key, or (nil, nil) when absent.
func (l *Local) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := l.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (l *Local) Set(ctx context.Context, key string, value []byte) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (l *Local) DeleteMeta(ctx context.Context, key string) error {
	_, err := l.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}

func (l *Local) AddWishlist(ctx context.Context, userID, movieID string) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO local_wishlist (user_id, movie_id, added_at) VALUES (?, ?, ?)
	`, userID, movieID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to add wishlist entry: %w", err)
	}
	return nil
}

func (l *Local) RemoveWishlist(ctx context.Context, userID, movieID string) error {
	_, err := l.db.ExecContext(ctx, `DELETE FROM local_wishlist WHERE user_id = ? AND movie_id = ?`, userID, movieID)
	if err != nil {
		return fmt.Errorf("failed to remove wishlist entry: %w", err)
	}
	return nil
}

func (l *Local) Wishlist(ctx context.Context, userID string) ([]string, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT movie_id FROM local_wishlist WHERE user_id = ? ORDER BY added_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan wishlist row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wishlist rows: %w", err)
	}
	return ids, nil
}

func (l *Local) InWishlist(ctx context.Context, userID, movieID string) (bool, error) {
	var n int
	err := l.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM local_wishlist WHERE user_id = ? AND movie_id = ?
	`, userID, movieID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check wishlist: %w", err)
	}
	return n > 0, nil
}

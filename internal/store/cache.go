// Package store is the local snapshot cache. The backend is the source
// of truth; this cache only lets the dashboard render the last-known
// state immediately on startup and across outages.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/foiadesk/foiadesk/internal/model"
)

// Cache is a SQLite-backed snapshot of notifications, user preferences,
// and per-feed sync cursors.
type Cache struct {
	db *sqlx.DB
}

// Open opens (or creates) the cache database at dbPath, enables WAL
// mode, and runs any pending schema migrations.
func Open(dbPath string) (*Cache, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	// WAL keeps reads cheap while the refresher writes snapshots.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	c := &Cache{db: db}
	if err := c.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return c, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (c *Cache) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := c.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = c.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := c.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// notificationRow is the sqlx mapping for the notifications table.
type notificationRow struct {
	ID        string    `db:"id"`
	Type      string    `db:"type"`
	Message   string    `db:"message"`
	Read      bool      `db:"read"`
	Link      string    `db:"link"`
	CreatedAt time.Time `db:"created_at"`
}

// SaveNotifications replaces the cached notification snapshot.
func (c *Cache) SaveNotifications(ctx context.Context, items []model.Notification) error {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM notifications"); err != nil {
		return fmt.Errorf("clearing notification snapshot: %w", err)
	}

	const query = `
		INSERT INTO notifications (id, type, message, read, link, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	for _, n := range items {
		_, err := tx.ExecContext(ctx, query,
			n.ID, n.Type, n.Message, n.Read, n.Link, n.CreatedAt)
		if err != nil {
			return fmt.Errorf("caching notification %s: %w", n.ID, err)
		}
	}

	return tx.Commit()
}

// LoadNotifications returns the cached notification snapshot, newest
// first.
func (c *Cache) LoadNotifications(ctx context.Context) ([]model.Notification, error) {
	var rows []notificationRow
	err := c.db.SelectContext(ctx, &rows,
		"SELECT id, type, message, read, link, created_at FROM notifications ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("loading notification snapshot: %w", err)
	}

	items := make([]model.Notification, len(rows))
	for i, r := range rows {
		items[i] = model.Notification{
			ID:        r.ID,
			Type:      r.Type,
			Message:   r.Message,
			Read:      r.Read,
			Link:      r.Link,
			CreatedAt: r.CreatedAt,
		}
	}
	return items, nil
}

// SetPreference stores one user preference (saved filters, page size).
func (c *Cache) SetPreference(ctx context.Context, key, value string) error {
	const query = `
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP`

	if _, err := c.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("saving preference %q: %w", key, err)
	}
	return nil
}

// GetPreference returns a stored preference, or the empty string when
// none is set.
func (c *Cache) GetPreference(ctx context.Context, key string) (string, error) {
	var value string
	err := c.db.GetContext(ctx, &value,
		"SELECT value FROM preferences WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading preference %q: %w", key, err)
	}
	return value, nil
}

// TouchFeed records a successful sync of the named feed.
func (c *Cache) TouchFeed(ctx context.Context, feed string, at time.Time) error {
	const query = `
		INSERT INTO sync_state (feed, last_sync_at)
		VALUES (?, ?)
		ON CONFLICT(feed) DO UPDATE SET last_sync_at = excluded.last_sync_at`

	if _, err := c.db.ExecContext(ctx, query, feed, at); err != nil {
		return fmt.Errorf("recording sync for feed %q: %w", feed, err)
	}
	return nil
}

// LastSync returns when the named feed last synced successfully, or
// the zero time when it never has.
func (c *Cache) LastSync(ctx context.Context, feed string) (time.Time, error) {
	var at sql.NullTime
	err := c.db.GetContext(ctx, &at,
		"SELECT last_sync_at FROM sync_state WHERE feed = ?", feed)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("reading sync state for %q: %w", feed, err)
	}
	if !at.Valid {
		return time.Time{}, nil
	}
	return at.Time, nil
}

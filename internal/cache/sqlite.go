// Package cache stores resolved locations keyed by postal code.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/i474232898/conditions/internal/weather"
)

const schema = `CREATE TABLE IF NOT EXISTS cache (
	postal_code TEXT NOT NULL,
	loc TEXT NOT NULL,
	latitude TEXT NOT NULL,
	longitude TEXT NOT NULL,
	UNIQUE(postal_code)
)`

// SQLiteCache is a weather.Cache backed by a single SQLite file. Entries
// never expire.
type SQLiteCache struct {
	db   *sql.DB
	path string
}

var _ weather.Cache = (*SQLiteCache)(nil)

// Open opens (creating if needed) the cache database at path.
func Open(ctx context.Context, path string) (*SQLiteCache, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One invocation does at most one read and one write.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout=5000`); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache table: %w", err)
	}

	return &SQLiteCache{db: db, path: path}, nil
}

// Path returns the database file location.
func (c *SQLiteCache) Path() string { return c.path }

// Get looks up a postal code. A miss returns ok == false and no error.
func (c *SQLiteCache) Get(ctx context.Context, postalCode string) (weather.Location, bool, error) {
	var loc weather.Location
	err := c.db.QueryRowContext(ctx,
		`SELECT postal_code, loc, latitude, longitude FROM cache WHERE postal_code = ?`,
		postalCode,
	).Scan(&loc.PostalCode, &loc.Loc, &loc.Latitude, &loc.Longitude)
	if errors.Is(err, sql.ErrNoRows) {
		return weather.Location{}, false, nil
	}
	if err != nil {
		return weather.Location{}, false, err
	}
	return loc, true, nil
}

// Set upserts loc under its postal code; the last writer wins.
func (c *SQLiteCache) Set(ctx context.Context, loc weather.Location) error {
	if loc.PostalCode == "" {
		return errors.New("cannot cache a location without postal code")
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO cache (postal_code, loc, latitude, longitude) VALUES (?, ?, ?, ?)
		ON CONFLICT(postal_code) DO UPDATE SET
			loc = excluded.loc,
			latitude = excluded.latitude,
			longitude = excluded.longitude`,
		loc.PostalCode, loc.Loc, loc.Latitude, loc.Longitude,
	)
	return err
}

func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

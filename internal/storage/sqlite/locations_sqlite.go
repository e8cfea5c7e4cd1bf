// Package sqlite provides persistent storage for location records in an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/illmade-knight/location-notes/pkg/locations"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DefaultFileName is the name of the database file inside the data directory.
const DefaultFileName = "locations.db3"

const schema = `
CREATE TABLE IF NOT EXISTS locations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL DEFAULT '',
    note TEXT NOT NULL DEFAULT '',
    longitude REAL NOT NULL DEFAULT 0,
    latitude REAL NOT NULL DEFAULT 0,
    altitude REAL NOT NULL DEFAULT 0
);`

const selectColumns = `SELECT id, title, note, longitude, latitude, altitude FROM locations`

// LocationsStore is a concrete implementation of the locations.Store interface using SQLite.
// It owns exactly one connection.
type LocationsStore struct {
	db   *sql.DB
	path string
}

// Open connects to the database at path, creating its parent directory and
// the locations table when missing. Failures wrap locations.ErrStorageUnavailable.
func Open(ctx context.Context, path string) (*LocationsStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create directory for %s: %v", locations.ErrStorageUnavailable, path, err)
	}

	dsn := (&url.URL{Scheme: "file", OmitHost: true, Path: filepath.ToSlash(path)}).String()
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", locations.ErrStorageUnavailable, path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", locations.ErrStorageUnavailable, path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: create schema in %s: %v", locations.ErrStorageUnavailable, path, err)
	}

	return &LocationsStore{db: db, path: path}, nil
}

// Path returns the file the store was opened on.
func (s *LocationsStore) Path() string {
	return s.path
}

// GetByID retrieves a record by its ID.
func (s *LocationsStore) GetByID(ctx context.Context, id int64) (locations.Record, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return locations.Record{}, fmt.Errorf("location with ID %d: %w", id, locations.ErrNotFound)
	}
	if err != nil {
		return locations.Record{}, err
	}
	return rec, nil
}

// Has reports whether a row with rec.ID exists.
func (s *LocationsStore) Has(ctx context.Context, rec locations.Record) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM locations WHERE id = ?)`, rec.ID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// GetAll returns every record in insertion order.
func (s *LocationsStore) GetAll(ctx context.Context) ([]locations.Record, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []locations.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, rec)
	}
	return results, rows.Err()
}

// Insert writes rec as a new row and sets rec.ID to the allocated ID.
func (s *LocationsStore) Insert(ctx context.Context, rec *locations.Record) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO locations (title, note, longitude, latitude, altitude) VALUES (?, ?, ?, ?, ?)`,
		rec.Title, rec.Note, rec.Longitude, rec.Latitude, rec.Altitude,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n < 0 {
		return false, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return false, err
	}
	rec.ID = id
	return true, nil
}

// Update overwrites the row matching rec.ID.
func (s *LocationsStore) Update(ctx context.Context, rec locations.Record) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE locations SET title = ?, note = ?, longitude = ?, latitude = ?, altitude = ? WHERE id = ?`,
		rec.Title, rec.Note, rec.Longitude, rec.Latitude, rec.Altitude, rec.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "update", rec.ID)
}

// Delete removes the row matching rec.ID.
func (s *LocationsStore) Delete(ctx context.Context, rec locations.Record) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, rec.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "delete", rec.ID)
}

// Clear removes every row and resets the ID sequence in a single transaction.
func (s *LocationsStore) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM locations`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = 'locations'`); err != nil {
		return err
	}
	return tx.Commit()
}

// Close releases the connection.
func (s *LocationsStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (locations.Record, error) {
	var rec locations.Record
	err := row.Scan(&rec.ID, &rec.Title, &rec.Note, &rec.Longitude, &rec.Latitude, &rec.Altitude)
	return rec, err
}

func requireRow(res sql.Result, op string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s location with ID %d: %w", op, id, locations.ErrNotFound)
	}
	return nil
}

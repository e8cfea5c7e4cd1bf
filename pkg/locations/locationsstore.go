// FILE: locations/store.go

package locations

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no record matches the requested ID.
	ErrNotFound = errors.New("location not found")
	// ErrStorageUnavailable is returned when the backing datastore cannot be created or opened.
	ErrStorageUnavailable = errors.New("location storage unavailable")
)

// Store is the interface for storing and retrieving location records.
//
// Implementations own a single connection and are not required to be safe
// for concurrent use; callers serialise access.
type Store interface {
	// GetByID returns the record with the given ID, or ErrNotFound.
	GetByID(ctx context.Context, id int64) (Record, error)
	// Has reports whether a record with rec.ID exists. Field contents are not compared.
	Has(ctx context.Context, rec Record) (bool, error)
	// GetAll returns every record in insertion order.
	GetAll(ctx context.Context) ([]Record, error)
	// Insert assigns a new ID to rec and persists it. A false result with a
	// nil error means the write was refused by the datastore.
	Insert(ctx context.Context, rec *Record) (bool, error)
	// Update overwrites the stored row matching rec.ID. Returns ErrNotFound when no row matched.
	Update(ctx context.Context, rec Record) error
	// Delete removes the row matching rec.ID. Returns ErrNotFound when no row matched.
	Delete(ctx context.Context, rec Record) error
	// Clear removes every record and resets ID allocation.
	Clear(ctx context.Context) error
	// Close releases the underlying connection.
	Close() error
}

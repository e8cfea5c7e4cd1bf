// Package firestore provides persistent storage implementations using Google Cloud Firestore.
package firestore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"cloud.google.com/go/firestore"
	"github.com/illmade-knight/location-notes/pkg/locations"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	locationsCollection = "locations"
	countersCollection  = "counters"
)

// locationDocument is the private struct used for Firestore marshalling. This keeps
// the public domain model in `pkg/locations` clean from persistence-specific tags.
type locationDocument struct {
	ID        int64   `firestore:"id"`
	Title     string  `firestore:"title"`
	Note      string  `firestore:"note"`
	Longitude float64 `firestore:"longitude"`
	Latitude  float64 `firestore:"latitude"`
	Altitude  float64 `firestore:"altitude"`
}

type counterDocument struct {
	Last int64 `firestore:"last"`
}

// LocationsStore is a concrete implementation of the locations.Store interface using Firestore.
// IDs are allocated from a counter document so they stay numeric and increasing.
type LocationsStore struct {
	client     *firestore.Client
	collection *firestore.CollectionRef
	counter    *firestore.DocumentRef
}

// NewLocationsStore creates a new Firestore-backed store for locations.
// The client remains owned by the caller.
func NewLocationsStore(client *firestore.Client) *LocationsStore {
	return &LocationsStore{
		client:     client,
		collection: client.Collection(locationsCollection),
		counter:    client.Collection(countersCollection).Doc(locationsCollection),
	}
}

func docID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func toLocationDocument(rec locations.Record) locationDocument {
	return locationDocument{
		ID:        rec.ID,
		Title:     rec.Title,
		Note:      rec.Note,
		Longitude: rec.Longitude,
		Latitude:  rec.Latitude,
		Altitude:  rec.Altitude,
	}
}

func toRecord(doc locationDocument) locations.Record {
	return locations.Record{
		ID:        doc.ID,
		Title:     doc.Title,
		Note:      doc.Note,
		Longitude: doc.Longitude,
		Latitude:  doc.Latitude,
		Altitude:  doc.Altitude,
	}
}

// GetByID retrieves a record by its ID.
func (s *LocationsStore) GetByID(ctx context.Context, id int64) (locations.Record, error) {
	doc, err := s.collection.Doc(docID(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return locations.Record{}, fmt.Errorf("location with ID %d: %w", id, locations.ErrNotFound)
		}
		return locations.Record{}, err
	}

	var ld locationDocument
	if err := doc.DataTo(&ld); err != nil {
		return locations.Record{}, err
	}
	return toRecord(ld), nil
}

// Has reports whether a document exists for rec.ID.
func (s *LocationsStore) Has(ctx context.Context, rec locations.Record) (bool, error) {
	if rec.ID <= 0 {
		return false, nil
	}
	_, err := s.collection.Doc(docID(rec.ID)).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetAll retrieves every record ordered by ID, which matches insertion order.
func (s *LocationsStore) GetAll(ctx context.Context) ([]locations.Record, error) {
	iter := s.collection.OrderBy("id", firestore.Asc).Documents(ctx)
	return processLocationIterator(iter)
}

// Insert allocates the next ID and creates the document in one transaction.
func (s *LocationsStore) Insert(ctx context.Context, rec *locations.Record) (bool, error) {
	var allocated int64
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var counter counterDocument
		snap, err := tx.Get(s.counter)
		switch {
		case status.Code(err) == codes.NotFound:
		case err != nil:
			return err
		default:
			if err := snap.DataTo(&counter); err != nil {
				return err
			}
		}

		allocated = counter.Last + 1
		doc := toLocationDocument(*rec)
		doc.ID = allocated
		if err := tx.Set(s.counter, counterDocument{Last: allocated}); err != nil {
			return err
		}
		return tx.Create(s.collection.Doc(docID(allocated)), doc)
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return false, nil
		}
		return false, err
	}
	rec.ID = allocated
	return true, nil
}

// Update overwrites the document for rec.ID.
func (s *LocationsStore) Update(ctx context.Context, rec locations.Record) error {
	_, err := s.collection.Doc(docID(rec.ID)).Update(ctx, []firestore.Update{
		{Path: "title", Value: rec.Title},
		{Path: "note", Value: rec.Note},
		{Path: "longitude", Value: rec.Longitude},
		{Path: "latitude", Value: rec.Latitude},
		{Path: "altitude", Value: rec.Altitude},
	})
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("update location with ID %d: %w", rec.ID, locations.ErrNotFound)
	}
	return err
}

// Delete removes the document for rec.ID.
func (s *LocationsStore) Delete(ctx context.Context, rec locations.Record) error {
	_, err := s.collection.Doc(docID(rec.ID)).Delete(ctx, firestore.Exists)
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("delete location with ID %d: %w", rec.ID, locations.ErrNotFound)
	}
	return err
}

// Clear deletes every location document and resets the ID counter.
// Firestore has no collection truncate, so this is a bulk delete followed by
// the counter reset; an interruption leaves a partially cleared collection.
func (s *LocationsStore) Clear(ctx context.Context) error {
	refs, err := s.collection.DocumentRefs(ctx).GetAll()
	if err != nil {
		return err
	}

	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(refs))
	for _, ref := range refs {
		job, err := bw.Delete(ref)
		if err != nil {
			bw.End()
			return err
		}
		jobs = append(jobs, job)
	}
	bw.End()

	var errs []error
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to clear locations: %w", err)
	}

	_, err = s.counter.Delete(ctx)
	return err
}

// Close is a no-op; the Firestore client is closed by its owner.
func (s *LocationsStore) Close() error {
	return nil
}

// processLocationIterator is a helper to drain results from a Firestore iterator.
func processLocationIterator(iter *firestore.DocumentIterator) ([]locations.Record, error) {
	defer iter.Stop()
	results := []locations.Record{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var ld locationDocument
		if err := doc.DataTo(&ld); err != nil {
			return nil, err
		}
		results = append(results, toRecord(ld))
	}
	return results, nil
}

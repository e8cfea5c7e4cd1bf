// FILE: locations/service.go

package locations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// ErrInsertRejected is returned by Save when the store refused the insert.
var ErrInsertRejected = errors.New("location insert rejected by store")

// Service provides the business logic for managing saved locations.
type Service struct {
	store    Store
	notifier Notifier
	logger   zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier sends a ChangeEvent to n after each successful mutation.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithLogger sets the service logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) { s.logger = logger.With().Str("component", "locations").Logger() }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetStore exposes the underlying store.
func (s *Service) GetStore() Store {
	return s.store
}

// Capture turns a fix into a new, unsaved record.
func (s *Service) Capture(fix Fix) Record {
	return NewRecord(fix)
}

// Save inserts rec if the store does not know its ID yet, otherwise updates it.
func (s *Service) Save(ctx context.Context, rec *Record) error {
	known, err := s.store.Has(ctx, *rec)
	if err != nil {
		return fmt.Errorf("failed to check location %d: %w", rec.ID, err)
	}
	if known {
		if err := s.store.Update(ctx, *rec); err != nil {
			return fmt.Errorf("failed to update location: %w", err)
		}
		s.logger.Debug().Int64("location_id", rec.ID).Msg("Location updated")
		s.notify(ctx, newChangeEvent(ChangeUpdated, *rec))
		return nil
	}

	ok, err := s.store.Insert(ctx, rec)
	if err != nil {
		return fmt.Errorf("failed to insert location: %w", err)
	}
	if !ok {
		return ErrInsertRejected
	}
	s.logger.Debug().Int64("location_id", rec.ID).Msg("Location inserted")
	s.notify(ctx, newChangeEvent(ChangeCreated, *rec))
	return nil
}

// Get fetches a single record by its ID.
func (s *Service) Get(ctx context.Context, id int64) (Record, error) {
	return s.store.GetByID(ctx, id)
}

// List returns every saved record.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.store.GetAll(ctx)
}

// Annotate replaces the title and note of a saved record. A blank title falls back to DefaultTitle.
func (s *Service) Annotate(ctx context.Context, id int64, title, note string) (Record, error) {
	rec, err := s.store.GetByID(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}
	rec.Title = title
	rec.Note = note
	if err := s.Save(ctx, &rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Remove deletes the record with the given ID.
func (s *Service) Remove(ctx context.Context, id int64) error {
	rec, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, rec); err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	s.logger.Debug().Int64("location_id", id).Msg("Location deleted")
	s.notify(ctx, newChangeEvent(ChangeDeleted, rec))
	return nil
}

// Clear removes every saved record.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear locations: %w", err)
	}
	s.logger.Info().Msg("All locations cleared")
	s.notify(ctx, newChangeEvent(ChangeCleared, Record{}))
	return nil
}

// notify never fails the mutation; the write has already been persisted.
func (s *Service) notify(ctx context.Context, ev ChangeEvent) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, ev); err != nil {
		s.logger.Warn().Err(err).Str("kind", string(ev.Kind)).Msg("Failed to deliver change event")
	}
}

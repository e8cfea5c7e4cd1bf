package locations

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ChangeKind names the kind of mutation a ChangeEvent describes.
type ChangeKind string

const (
	ChangeCreated ChangeKind = "CREATED"
	ChangeUpdated ChangeKind = "UPDATED"
	ChangeDeleted ChangeKind = "DELETED"
	ChangeCleared ChangeKind = "CLEARED"
)

// ChangeEvent describes one mutation of the store. Record is empty for ChangeCleared.
type ChangeEvent struct {
	ID     uuid.UUID  `json:"id"`
	Kind   ChangeKind `json:"kind"`
	Record Record     `json:"record"`
	At     time.Time  `json:"at"`
}

// Notifier receives change events after a mutation has been persisted.
type Notifier interface {
	Notify(ctx context.Context, ev ChangeEvent) error
}

func newChangeEvent(kind ChangeKind, rec Record) ChangeEvent {
	return ChangeEvent{
		ID:     uuid.New(),
		Kind:   kind,
		Record: rec,
		At:     time.Now().UTC(),
	}
}

package events

import (
	"context"

	"github.com/illmade-knight/location-notes/pkg/locations"
	"github.com/rs/zerolog"
)

// LogNotifier writes change events to a logger. It is used when no topic is configured.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With().Str("notifier", "log").Logger()}
}

func (n *LogNotifier) Notify(ctx context.Context, ev locations.ChangeEvent) error {
	n.logger.Info().
		Stringer("event_id", ev.ID).
		Str("kind", string(ev.Kind)).
		Int64("location_id", ev.Record.ID).
		Str("title", ev.Record.Title).
		Msg("Location changed")
	return nil
}

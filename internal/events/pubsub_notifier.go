// Package events delivers location change events to external consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub/v2"
	"github.com/illmade-knight/location-notes/pkg/locations"
	"github.com/rs/zerolog"
)

// PubSubNotifier publishes change events as JSON messages on a Pub/Sub topic.
type PubSubNotifier struct {
	publisher *pubsub.Publisher
	logger    zerolog.Logger
}

// NewPubSubNotifier creates a notifier publishing to topicID.
func NewPubSubNotifier(client *pubsub.Client, topicID string, logger zerolog.Logger) *PubSubNotifier {
	return &PubSubNotifier{
		publisher: client.Publisher(topicID),
		logger:    logger.With().Str("notifier", "pubsub").Str("topic", topicID).Logger(),
	}
}

// Notify publishes ev and waits for the server to acknowledge it.
func (n *PubSubNotifier) Notify(ctx context.Context, ev locations.ChangeEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}

	result := n.publisher.Publish(ctx, &pubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"kind": string(ev.Kind),
		},
	})
	msgID, err := result.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to publish change event: %w", err)
	}

	n.logger.Debug().Str("msg_id", msgID).Str("kind", string(ev.Kind)).Int64("location_id", ev.Record.ID).Msg("Published change event")
	return nil
}

// Stop flushes pending messages and releases the publisher.
func (n *PubSubNotifier) Stop() {
	n.publisher.Stop()
}

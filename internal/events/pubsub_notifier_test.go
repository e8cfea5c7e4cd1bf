//go:build integration

package events_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/google/uuid"
	"github.com/illmade-knight/go-test/emulators"
	"github.com/illmade-knight/location-notes/internal/events"
	"github.com/illmade-knight/location-notes/pkg/locations"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPubSubNotifier(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	t.Cleanup(cancel)
	const projectID = "test-project"
	runID := uuid.NewString()
	topicID := "location-changes-" + runID
	subID := "location-changes-sub-" + runID

	pubsubConn := emulators.SetupPubsubEmulator(t, ctx, emulators.GetDefaultPubsubConfig(projectID))
	psClient, err := pubsub.NewClient(ctx, projectID, pubsubConn.ClientOptions...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = psClient.Close() })

	topicName := fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)
	_, err = psClient.TopicAdminClient.CreateTopic(ctx, &pubsubpb.Topic{Name: topicName})
	require.NoError(t, err)
	_, err = psClient.SubscriptionAdminClient.CreateSubscription(ctx, &pubsubpb.Subscription{
		Name:  fmt.Sprintf("projects/%s/subscriptions/%s", projectID, subID),
		Topic: topicName,
	})
	require.NoError(t, err)

	notifier := events.NewPubSubNotifier(psClient, topicID, zerolog.New(zerolog.NewTestWriter(t)))
	t.Cleanup(notifier.Stop)

	svc := locations.NewService(locations.NewInMemoryStore(), locations.WithNotifier(notifier))
	rec := locations.NewRecord(locations.Fix{Latitude: 51.5, Longitude: -0.1, Altitude: 10})
	require.NoError(t, svc.Save(ctx, &rec))

	received := make(chan locations.ChangeEvent, 1)
	receiveCtx, stop := context.WithTimeout(ctx, 30*time.Second)
	defer stop()
	err = psClient.Subscriber(subID).Receive(receiveCtx, func(_ context.Context, msg *pubsub.Message) {
		msg.Ack()
		var ev locations.ChangeEvent
		if json.Unmarshal(msg.Data, &ev) == nil {
			select {
			case received <- ev:
			default:
			}
		}
		stop()
	})
	require.NoError(t, err)

	select {
	case ev := <-received:
		assert.Equal(t, locations.ChangeCreated, ev.Kind)
		assert.Equal(t, rec, ev.Record)
	default:
		t.Fatal("no change event received")
	}
}

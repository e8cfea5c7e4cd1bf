//go:build integration

package e2e_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/pubsub/v2"
	"cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/google/uuid"
	"github.com/illmade-knight/go-test/emulators"
	"github.com/illmade-knight/location-notes/app"
	"github.com/illmade-knight/location-notes/internal/events"
	firestorestorage "github.com/illmade-knight/location-notes/internal/storage/firestore"
	"github.com/illmade-knight/location-notes/pkg/locations"
	"github.com/illmade-knight/location-notes/pkg/providers"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullApplicationFlow(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)
	logger := zerolog.New(zerolog.NewTestWriter(t))
	const projectID = "test-project"
	runID := uuid.NewString()
	topicID := "location-changes-" + runID
	subID := "location-changes-sub-" + runID

	// 1. SETUP: Start Emulators
	pubsubConn := emulators.SetupPubsubEmulator(t, ctx, emulators.GetDefaultPubsubConfig(projectID))
	psClient, err := pubsub.NewClient(ctx, projectID, pubsubConn.ClientOptions...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = psClient.Close() })

	firestoreConn := emulators.SetupFirestoreEmulator(t, ctx, emulators.GetDefaultFirestoreConfig(projectID))
	fsClient, err := firestore.NewClient(ctx, projectID, firestoreConn.ClientOptions...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fsClient.Close() })

	topicName := fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)
	_, err = psClient.TopicAdminClient.CreateTopic(ctx, &pubsubpb.Topic{Name: topicName})
	require.NoError(t, err)
	_, err = psClient.SubscriptionAdminClient.CreateSubscription(ctx, &pubsubpb.Subscription{
		Name:  fmt.Sprintf("projects/%s/subscriptions/%s", projectID, subID),
		Topic: topicName,
	})
	require.NoError(t, err)

	// 2. ARRANGE: Assemble the application on real adapters
	notifier := events.NewPubSubNotifier(psClient, topicID, logger)
	t.Cleanup(notifier.Stop)
	svc := locations.NewService(firestorestorage.NewLocationsStore(fsClient), locations.WithNotifier(notifier), locations.WithLogger(logger))
	platform := providers.NewStaticPlatform(
		providers.Descriptor{Name: "network", Accuracy: providers.AccuracyCoarse, Power: providers.PowerLow, Enabled: true},
	)
	application := app.New(providers.NewSelector(platform, logger), svc, nil, logger)

	// 3. ACT: Select provider, receive a fix, save, edit, delete
	provider, err := application.Start(ctx)
	require.NoError(t, err)
	require.Equal(t, "network", provider)
	require.True(t, application.Selector.IsCurrentProvider("network"))

	application.OnFix(locations.Fix{Provider: provider, Longitude: -0.1, Latitude: 51.5, Altitude: 10.0, Time: time.Now()})
	rec, err := application.AddCurrentLocation(ctx, "", "")
	require.NoError(t, err)
	require.Equal(t, int64(1), rec.ID)

	rec.Note = "Park bench"
	require.NoError(t, application.Submit(ctx, &rec))

	stored, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Park bench", stored.Note)
	assert.Equal(t, 51.5, stored.Latitude)

	require.NoError(t, svc.Remove(ctx, 1))
	_, err = svc.Get(ctx, 1)
	require.ErrorIs(t, err, locations.ErrNotFound)

	// 4. ASSERT: Every mutation was published
	var (
		mu    sync.Mutex
		kinds []locations.ChangeKind
	)
	receiveCtx, stop := context.WithTimeout(ctx, 30*time.Second)
	defer stop()
	err = psClient.Subscriber(subID).Receive(receiveCtx, func(_ context.Context, msg *pubsub.Message) {
		msg.Ack()
		var ev locations.ChangeEvent
		if json.Unmarshal(msg.Data, &ev) != nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		kinds = append(kinds, ev.Kind)
		if len(kinds) == 3 {
			stop()
		}
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []locations.ChangeKind{locations.ChangeCreated, locations.ChangeUpdated, locations.ChangeDeleted}, kinds)
}

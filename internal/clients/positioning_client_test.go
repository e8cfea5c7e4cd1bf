package clients_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/illmade-knight/location-notes/internal/clients"
	"github.com/illmade-knight/location-notes/pkg/providers"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositioningClient(t *testing.T) {
	ctx := context.Background()

	// Arrange: Create a mock HTTP server to act as the positioning service
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/providers":
			_, _ = w.Write([]byte(`[
				{"name":"gps","accuracy":"fine","power":"medium","enabled":false},
				{"name":"network","accuracy":"coarse","power":"low","enabled":true}
			]`))
		case "/providers/network/fix":
			_, _ = w.Write([]byte(`{"longitude":-0.1,"latitude":51.5,"altitude":10,"time":"2024-01-01T12:00:00Z"}`))
		case "/providers/broken/fix":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer mockServer.Close()

	client := clients.NewPositioningClient(mockServer.URL, zerolog.Nop())

	t.Run("ListProviders - Success", func(t *testing.T) {
		descriptors, err := client.ListProviders(ctx)
		require.NoError(t, err)
		require.Len(t, descriptors, 2)
		assert.Equal(t, providers.AccuracyFine, descriptors[0].Accuracy)
		assert.True(t, descriptors[1].Enabled)
	})

	t.Run("Selector over client", func(t *testing.T) {
		selector := providers.NewSelector(providers.NewDescriptorPlatform(client), zerolog.Nop())
		name, ok, err := selector.GetBestProvider(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "network", name)
	})

	t.Run("LatestFix - Success", func(t *testing.T) {
		fix, err := client.LatestFix(ctx, "network")
		require.NoError(t, err)
		assert.Equal(t, "network", fix.Provider)
		assert.Equal(t, 51.5, fix.Latitude)
		assert.Equal(t, -0.1, fix.Longitude)
		assert.Equal(t, 10.0, fix.Altitude)
	})

	t.Run("LatestFix - Not Found", func(t *testing.T) {
		_, err := client.LatestFix(ctx, "gps")
		require.Error(t, err)
		assert.ErrorIs(t, err, clients.ErrNoFix)
	})

	t.Run("LatestFix - Server Error", func(t *testing.T) {
		_, err := client.LatestFix(ctx, "broken")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code: 500")
	})
}

package locations_test

import (
	"testing"
	"time"

	"github.com/illmade-knight/location-notes/pkg/locations"
	"github.com/stretchr/testify/assert"
)

func TestRecord_String(t *testing.T) {
	rec := locations.Record{Title: "Home", Latitude: 51.5, Longitude: -0.1, Altitude: 10}
	assert.Equal(t, "Home at Lat:51.5, Lon:-0.1, Alt:10", rec.String())
}

func TestDistanceMeters(t *testing.T) {
	london := locations.Fix{Latitude: 51.5074, Longitude: -0.1278}
	paris := locations.Fix{Latitude: 48.8566, Longitude: 2.3522}

	assert.InDelta(t, 343_500, locations.DistanceMeters(london, paris), 1_000)
	assert.Zero(t, locations.DistanceMeters(london, london))
}

func TestTracker_Offer(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tracker := locations.NewTracker()

	_, ok := tracker.Latest()
	assert.False(t, ok)

	first := locations.Fix{Latitude: 51.5, Longitude: -0.1, Time: start}
	assert.True(t, tracker.Offer(first), "first fix is always accepted")

	jitter := locations.Fix{Latitude: 51.5, Longitude: -0.1, Time: start.Add(200 * time.Millisecond)}
	assert.False(t, tracker.Offer(jitter), "too soon and too close")

	moved := locations.Fix{Latitude: 51.5001, Longitude: -0.1, Time: start.Add(300 * time.Millisecond)}
	assert.True(t, tracker.Offer(moved), "moved roughly 11 meters")

	later := locations.Fix{Latitude: 51.5001, Longitude: -0.1, Time: start.Add(2 * time.Second)}
	assert.True(t, tracker.Offer(later), "interval elapsed")

	latest, ok := tracker.Latest()
	assert.True(t, ok)
	assert.Equal(t, later, latest)

	tracker.Reset()
	_, ok = tracker.Latest()
	assert.False(t, ok)
}

package providers_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/illmade-knight/location-notes/pkg/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBest(t *testing.T) {
	all := []providers.Descriptor{enabled(passive), enabled(network), enabled(gps)}

	t.Run("fine profile only matches fine providers", func(t *testing.T) {
		name, ok := providers.Best(all, providers.FineProfile, true)
		require.True(t, ok)
		assert.Equal(t, "gps", name)
	})

	t.Run("coarse profile accepts finer providers", func(t *testing.T) {
		name, ok := providers.Best(all, providers.CoarseProfile, true)
		require.True(t, ok)
		assert.Equal(t, "gps", name)
	})

	t.Run("power budget relaxed when nothing fits", func(t *testing.T) {
		name, ok := providers.Best([]providers.Descriptor{enabled(passive)}, providers.CoarseProfile, true)
		require.True(t, ok)
		assert.Equal(t, "passive", name)

		gpsHigh := enabled(providers.Descriptor{Name: "gps", Accuracy: providers.AccuracyFine, Power: providers.PowerHigh})
		name, ok = providers.Best([]providers.Descriptor{gpsHigh}, providers.FineProfile, true)
		require.True(t, ok)
		assert.Equal(t, "gps", name)
	})

	t.Run("power budget preferred over relaxed match", func(t *testing.T) {
		name, ok := providers.Best([]providers.Descriptor{enabled(passive), enabled(network)}, providers.CoarseProfile, true)
		require.True(t, ok)
		assert.Equal(t, "network", name)
	})

	t.Run("relaxed match keeps lowest power", func(t *testing.T) {
		hungry := enabled(providers.Descriptor{Name: "a-gps", Accuracy: providers.AccuracyFine, Power: providers.PowerHigh})
		lean := enabled(providers.Descriptor{Name: "b-gps", Accuracy: providers.AccuracyFine, Power: providers.PowerMedium})
		lowPower := providers.Profile{Accuracy: providers.AccuracyFine, Power: providers.PowerLow}
		name, ok := providers.Best([]providers.Descriptor{hungry, lean}, lowPower, true)
		require.True(t, ok)
		assert.Equal(t, "b-gps", name)
	})

	t.Run("relaxing power never relaxes accuracy", func(t *testing.T) {
		_, ok := providers.Best([]providers.Descriptor{enabled(passive)}, providers.FineProfile, true)
		assert.False(t, ok)
	})

	t.Run("disabled providers are skipped only when asked", func(t *testing.T) {
		_, ok := providers.Best([]providers.Descriptor{gps}, providers.FineProfile, true)
		assert.False(t, ok)
		name, ok := providers.Best([]providers.Descriptor{gps}, providers.FineProfile, false)
		assert.True(t, ok)
		assert.Equal(t, "gps", name)
	})

	t.Run("ties broken by name", func(t *testing.T) {
		a := enabled(providers.Descriptor{Name: "b-net", Accuracy: providers.AccuracyCoarse, Power: providers.PowerLow})
		b := enabled(providers.Descriptor{Name: "a-net", Accuracy: providers.AccuracyCoarse, Power: providers.PowerLow})
		name, ok := providers.Best([]providers.Descriptor{a, b}, providers.CoarseProfile, true)
		require.True(t, ok)
		assert.Equal(t, "a-net", name)
	})
}

func TestDescriptorPlatform(t *testing.T) {
	static := providers.NewStaticPlatform(gps, enabled(network))
	platform := providers.NewDescriptorPlatform(static)

	name, ok, err := platform.BestProvider(context.Background(), providers.CoarseProfile, true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "network", name)

	assert.True(t, static.SetEnabled("gps", true))
	assert.False(t, static.SetEnabled("galileo", true))
	name, _, err = platform.BestProvider(context.Background(), providers.CoarseProfile, true)
	require.NoError(t, err)
	assert.Equal(t, "gps", name)
}

func TestDescriptor_JSON(t *testing.T) {
	var d providers.Descriptor
	err := json.Unmarshal([]byte(`{"name":"gps","accuracy":"fine","power":"medium","enabled":true}`), &d)
	require.NoError(t, err)
	assert.Equal(t, enabled(gps), d)

	err = json.Unmarshal([]byte(`{"name":"x","accuracy":"perfect"}`), &d)
	assert.Error(t, err)
}

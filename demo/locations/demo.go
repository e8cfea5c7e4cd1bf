// FILE: main.go
// This demo walks through a single session: pick a provider, receive fixes, save and edit locations.

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/illmade-knight/location-notes/app"
	"github.com/illmade-knight/location-notes/pkg/locations"
	"github.com/illmade-knight/location-notes/pkg/providers"
	"github.com/rs/zerolog"
)

func main() {
	log.Println("--- Starting Location Notes Demo ---")
	ctx := context.Background()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)

	// 1. Initialize the platform, services and the in-memory store
	platform := providers.NewStaticPlatform(
		providers.Descriptor{Name: "gps", Accuracy: providers.AccuracyFine, Power: providers.PowerMedium},
		providers.Descriptor{Name: "network", Accuracy: providers.AccuracyCoarse, Power: providers.PowerLow, Enabled: true},
	)
	locationService := locations.NewService(locations.NewInMemoryStore())
	application := app.New(providers.NewSelector(platform, logger), locationService, nil, logger)

	// 2. Select a provider
	provider, err := application.Start(ctx)
	if err != nil {
		log.Fatalf("no provider: %v", err)
	}
	log.Printf("Listening on %q", provider)

	// 3. GPS comes online and takes over
	platform.SetEnabled("gps", true)
	provider, _ = application.OnProviderEnabled(ctx, "gps")
	log.Printf("Switched to %q", provider)

	// 4. Fixes arrive and we save two places
	application.OnFix(locations.Fix{Provider: provider, Longitude: -0.1, Latitude: 51.5, Altitude: 10, Time: time.Now()})
	home, _ := application.AddCurrentLocation(ctx, "", "")
	application.OnFix(locations.Fix{Provider: provider, Longitude: -0.1276, Latitude: 51.5072, Altitude: 14, Time: time.Now().Add(5 * time.Second)})
	park, _ := application.AddCurrentLocation(ctx, "Park", "by the pond")

	// 5. Edit the first one
	home.Note = "Park bench"
	_ = application.Submit(ctx, &home)

	// 6. Display everything
	all, _ := locationService.List(ctx)
	for _, rec := range all {
		fmt.Printf(" %d  %s  %q\n", rec.ID, rec, rec.Note)
	}

	// 7. Delete one and show the distance between the two saved fixes
	log.Printf("Distance between saved places: %.0f m", locations.DistanceMeters(
		locations.Fix{Latitude: home.Latitude, Longitude: home.Longitude},
		locations.Fix{Latitude: park.Latitude, Longitude: park.Longitude},
	))
	_ = locationService.Remove(ctx, park.ID)
	remaining, _ := locationService.List(ctx)
	log.Printf("%d location(s) left", len(remaining))
}

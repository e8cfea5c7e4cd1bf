package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/pubsub/v2"
	"github.com/illmade-knight/location-notes/app"
	"github.com/illmade-knight/location-notes/internal/api"
	"github.com/illmade-knight/location-notes/internal/clients"
	"github.com/illmade-knight/location-notes/internal/config"
	"github.com/illmade-knight/location-notes/internal/events"
	firestorestorage "github.com/illmade-knight/location-notes/internal/storage/firestore"
	"github.com/illmade-knight/location-notes/internal/storage/sqlite"
	"github.com/illmade-knight/location-notes/pkg/locations"
	"github.com/illmade-knight/location-notes/pkg/providers"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
)

// manualProvider names the provider used for fixes typed on the command line.
const manualProvider = "manual"

const usage = `usage: locationnotes [flags] <command> [args]

commands:
  add                      save a location (--lat/--lon/--alt, or the positioning service)
  list                     list saved locations
  show <id>                show one location
  edit <id>                change --title and --note of a location
  delete <id>              delete a location
  clear                    delete every location
  provider                 show the provider that would be used
  serve                    run the HTTP API
`

func main() {
	config.RegisterFlags(flag.CommandLine)
	title := flag.String("title", "", "location title")
	note := flag.String("note", "", "location note")
	lat := flag.Float64("lat", 0, "latitude of a manually entered fix")
	lon := flag.Float64("lon", 0, "longitude of a manually entered fix")
	alt := flag.Float64("alt", 0, "altitude of a manually entered fix")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(flag.CommandLine)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if cfg.Debug {
		logger = logger.Level(zerolog.DebugLevel)
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := command{
		name:     args[0],
		args:     args[1:],
		title:    *title,
		note:     *note,
		hasFix:   flag.CommandLine.Changed("lat") || flag.CommandLine.Changed("lon"),
		fix:      locations.Fix{Provider: manualProvider, Latitude: *lat, Longitude: *lon, Altitude: *alt, Time: time.Now()},
		out:      os.Stdout,
		listenOn: cfg.ListenAddr,
	}
	if err := run(ctx, cfg, cmd, logger); err != nil {
		logger.Error().Err(err).Str("command", cmd.name).Msg("Command failed")
		os.Exit(1)
	}
}

type command struct {
	name     string
	args     []string
	title    string
	note     string
	hasFix   bool
	fix      locations.Fix
	out      io.Writer
	listenOn string
}

func run(ctx context.Context, cfg config.Config, cmd command, logger zerolog.Logger) error {
	// 1. Storage
	store, cleanupStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanupStore()

	// 2. Change events
	notifier, cleanupNotifier, err := newNotifier(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanupNotifier()

	// 3. Positioning
	var (
		platform providers.Platform
		fixes    app.FixSource
	)
	if cfg.PositioningURL != "" {
		client := clients.NewPositioningClient(cfg.PositioningURL, logger)
		platform = providers.NewDescriptorPlatform(client)
		fixes = client
	} else {
		platform = providers.NewStaticPlatform(providers.Descriptor{
			Name:     manualProvider,
			Accuracy: providers.AccuracyFine,
			Power:    providers.PowerLow,
			Enabled:  true,
		})
	}

	// 4. Application
	locationSvc := locations.NewService(store, locations.WithNotifier(notifier), locations.WithLogger(logger))
	application := app.New(providers.NewSelector(platform, logger), locationSvc, fixes, logger)

	switch cmd.name {
	case "add":
		return addLocation(ctx, application, cmd)
	case "list":
		all, err := locationSvc.List(ctx)
		if err != nil {
			return err
		}
		for _, rec := range all {
			fmt.Fprintf(cmd.out, "%d\t%s\t%s\n", rec.ID, rec.String(), rec.Note)
		}
		return nil
	case "show":
		id, err := parseID(cmd.args)
		if err != nil {
			return err
		}
		rec, err := locationSvc.Get(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.out, "%d\t%s\n%s\n", rec.ID, rec.String(), rec.Note)
		return nil
	case "edit":
		id, err := parseID(cmd.args)
		if err != nil {
			return err
		}
		rec, err := locationSvc.Annotate(ctx, id, cmd.title, cmd.note)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.out, "%d\t%s\n", rec.ID, rec.String())
		return nil
	case "delete":
		id, err := parseID(cmd.args)
		if err != nil {
			return err
		}
		return locationSvc.Remove(ctx, id)
	case "clear":
		return locationSvc.Clear(ctx)
	case "provider":
		name, err := application.Start(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.out, name)
		return nil
	case "serve":
		return serve(ctx, application, cmd.listenOn, logger)
	default:
		return fmt.Errorf("unknown command %q", cmd.name)
	}
}

func addLocation(ctx context.Context, application *app.App, cmd command) error {
	if cmd.hasFix {
		application.OnFix(cmd.fix)
	} else {
		if _, err := application.Start(ctx); err != nil {
			return err
		}
		if _, err := application.Refresh(ctx); err != nil {
			return err
		}
	}
	rec, err := application.AddCurrentLocation(ctx, cmd.title, cmd.note)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.out, "%d\t%s\n", rec.ID, rec.String())
	return nil
}

func serve(ctx context.Context, application *app.App, addr string, logger zerolog.Logger) error {
	if _, err := application.Start(ctx); err != nil && !errors.Is(err, app.ErrNoProvider) {
		return err
	}
	server := api.New(application, logger)
	server.Start(addr)

	logger.Info().Msg("Location notes service initialized. Waiting for shutdown signal...")
	<-ctx.Done()
	logger.Info().Msg("Shutdown signal received. Exiting.")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg config.Config) (locations.Store, func(), error) {
	switch cfg.Backend {
	case config.BackendMemory:
		store := locations.NewInMemoryStore()
		return store, func() { _ = store.Close() }, nil
	case config.BackendFirestore:
		fsClient, err := firestore.NewClient(ctx, cfg.GCPProjectID)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: firestore client: %v", locations.ErrStorageUnavailable, err)
		}
		store := firestorestorage.NewLocationsStore(fsClient)
		return store, func() {
			_ = store.Close()
			_ = fsClient.Close()
		}, nil
	default:
		store, err := sqlite.Open(ctx, cfg.DBPath())
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}
}

func newNotifier(ctx context.Context, cfg config.Config, logger zerolog.Logger) (locations.Notifier, func(), error) {
	if cfg.ChangesTopic == "" {
		return events.NewLogNotifier(logger), func() {}, nil
	}
	psClient, err := pubsub.NewClient(ctx, cfg.GCPProjectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Pub/Sub client: %w", err)
	}
	notifier := events.NewPubSubNotifier(psClient, cfg.ChangesTopic, logger)
	return notifier, func() {
		notifier.Stop()
		_ = psClient.Close()
	}, nil
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one location id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid location id %q", args[0])
	}
	return id, nil
}

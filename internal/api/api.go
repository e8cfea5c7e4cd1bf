// Package api exposes saved locations over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/illmade-knight/location-notes/app"
	"github.com/rs/zerolog"
)

// handlerFn returns the response body or an error to be mapped to a status code.
type handlerFn = func(r *http.Request) (any, int, error)

// API serves the location notebook. Requests are serialised because the
// underlying store expects a single caller.
type API struct {
	mu     sync.Mutex
	app    *app.App
	logger zerolog.Logger
	server *http.Server
}

// New creates the API around an assembled App.
func New(application *app.App, logger zerolog.Logger) *API {
	return &API{
		app:    application,
		logger: logger.With().Str("component", "api").Logger(),
	}
}

// Router creates the router with all the routes and middleware.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}).Handler)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("."))
	})

	r.Route("/locations", func(r chi.Router) {
		r.Get("/", a.handle(a.listLocations))
		r.Post("/", a.handle(a.createLocation))
		r.Delete("/", a.handle(a.clearLocations))
		r.Get("/{id}", a.handle(a.getLocation))
		r.Put("/{id}", a.handle(a.updateLocation))
		r.Delete("/{id}", a.handle(a.deleteLocation))
	})

	r.Route("/provider", func(r chi.Router) {
		r.Get("/", a.handle(a.currentProvider))
		r.Post("/select", a.handle(a.selectProvider))
		r.Post("/events", a.handle(a.providerEvent))
		r.Post("/fix", a.handle(a.pushFix))
	})
	return r
}

// Start listens on addr in the background.
func (a *API) Start(addr string) {
	a.server = &http.Server{
		Addr:              addr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		a.logger.Info().Str("addr", addr).Msg("HTTP API listening")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error().Err(err).Msg("HTTP API stopped")
		}
	}()
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (a *API) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

func (a *API) handle(fn handlerFn) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		body, status, err := fn(r)
		a.mu.Unlock()

		if err != nil {
			status = statusFor(err)
			if status >= http.StatusInternalServerError {
				a.logger.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
			}
			writeJSON(w, status, map[string]string{"error": err.Error()})
			return
		}
		if body == nil {
			w.WriteHeader(status)
			return
		}
		writeJSON(w, status, body)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

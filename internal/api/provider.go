package api

import (
	"encoding/json"
	"net/http"

	"github.com/illmade-knight/location-notes/pkg/locations"
)

// ProviderResponse reports the current provider selection.
type ProviderResponse struct {
	Provider string `json:"provider,omitempty"`
	Active   bool   `json:"active"`
}

// ProviderEvent is the body of POST /provider/events.
type ProviderEvent struct {
	Provider string `json:"provider"`
	Enabled  bool   `json:"enabled"`
}

func (a *API) currentProvider(r *http.Request) (any, int, error) {
	name, ok := a.app.Selector.Current()
	return ProviderResponse{Provider: name, Active: ok}, http.StatusOK, nil
}

func (a *API) selectProvider(r *http.Request) (any, int, error) {
	name, err := a.app.Start(r.Context())
	if err != nil {
		return nil, 0, err
	}
	return ProviderResponse{Provider: name, Active: true}, http.StatusOK, nil
}

func (a *API) providerEvent(r *http.Request) (any, int, error) {
	var ev ProviderEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil || ev.Provider == "" {
		return nil, 0, &HTTPError{Code: http.StatusBadRequest, Message: ErrInvalidJSON.Error()}
	}

	var (
		name string
		err  error
	)
	if ev.Enabled {
		name, err = a.app.OnProviderEnabled(r.Context(), ev.Provider)
	} else {
		name, err = a.app.OnProviderDisabled(r.Context(), ev.Provider)
	}
	if err != nil {
		return nil, 0, err
	}
	return ProviderResponse{Provider: name, Active: name != ""}, http.StatusOK, nil
}

func (a *API) pushFix(r *http.Request) (any, int, error) {
	var fix locations.Fix
	if err := json.NewDecoder(r.Body).Decode(&fix); err != nil {
		return nil, 0, &HTTPError{Code: http.StatusBadRequest, Message: ErrInvalidJSON.Error()}
	}
	accepted := a.app.OnFix(fix)
	return map[string]bool{"accepted": accepted}, http.StatusOK, nil
}

package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/illmade-knight/location-notes/pkg/locations"
)

// LocationRequest is the body of POST and PUT /locations.
// Coordinates are only read on POST; when omitted the latest fix is used.
type LocationRequest struct {
	Title     string   `json:"title"`
	Note      string   `json:"note"`
	Longitude *float64 `json:"longitude,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Altitude  *float64 `json:"altitude,omitempty"`
}

func decodeLocationRequest(r *http.Request) (LocationRequest, error) {
	var req LocationRequest
	if r.Body == nil || r.ContentLength == 0 {
		return req, nil
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, &HTTPError{Code: http.StatusBadRequest, Message: ErrInvalidJSON.Error()}
	}
	return req, nil
}

func locationID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &HTTPError{Code: http.StatusBadRequest, Message: ErrInvalidLocationID.Error()}
	}
	return id, nil
}

func (a *API) listLocations(r *http.Request) (any, int, error) {
	all, err := a.app.LocationSvc.List(r.Context())
	if err != nil {
		return nil, 0, err
	}
	return all, http.StatusOK, nil
}

func (a *API) getLocation(r *http.Request) (any, int, error) {
	id, err := locationID(r)
	if err != nil {
		return nil, 0, err
	}
	rec, err := a.app.LocationSvc.Get(r.Context(), id)
	if err != nil {
		return nil, 0, err
	}
	return rec, http.StatusOK, nil
}

func (a *API) createLocation(r *http.Request) (any, int, error) {
	req, err := decodeLocationRequest(r)
	if err != nil {
		return nil, 0, err
	}

	if req.Latitude == nil && req.Longitude == nil {
		rec, err := a.app.AddCurrentLocation(r.Context(), req.Title, req.Note)
		if err != nil {
			return nil, 0, err
		}
		return rec, http.StatusCreated, nil
	}
	if req.Latitude == nil || req.Longitude == nil {
		return nil, 0, &HTTPError{Code: http.StatusBadRequest, Message: ErrIncompleteFix.Error()}
	}

	fix := locations.Fix{Latitude: *req.Latitude, Longitude: *req.Longitude, Time: time.Now()}
	if req.Altitude != nil {
		fix.Altitude = *req.Altitude
	}
	rec := a.app.LocationSvc.Capture(fix)
	if strings.TrimSpace(req.Title) != "" {
		rec.Title = req.Title
	}
	rec.Note = req.Note
	if err := a.app.Submit(r.Context(), &rec); err != nil {
		return nil, 0, err
	}
	return rec, http.StatusCreated, nil
}

func (a *API) updateLocation(r *http.Request) (any, int, error) {
	id, err := locationID(r)
	if err != nil {
		return nil, 0, err
	}
	req, err := decodeLocationRequest(r)
	if err != nil {
		return nil, 0, err
	}
	rec, err := a.app.LocationSvc.Annotate(r.Context(), id, req.Title, req.Note)
	if err != nil {
		return nil, 0, err
	}
	return rec, http.StatusOK, nil
}

func (a *API) deleteLocation(r *http.Request) (any, int, error) {
	id, err := locationID(r)
	if err != nil {
		return nil, 0, err
	}
	if err := a.app.LocationSvc.Remove(r.Context(), id); err != nil {
		return nil, 0, err
	}
	return nil, http.StatusNoContent, nil
}

func (a *API) clearLocations(r *http.Request) (any, int, error) {
	if err := a.app.LocationSvc.Clear(r.Context()); err != nil {
		return nil, 0, err
	}
	return nil, http.StatusNoContent, nil
}

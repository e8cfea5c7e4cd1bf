// Package clients provides HTTP clients for communicating with external services.
package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/illmade-knight/location-notes/pkg/locations"
	"github.com/illmade-knight/location-notes/pkg/providers"
	"github.com/rs/zerolog"
)

// ErrNoFix is returned when the positioning service has no fix yet for a provider.
var ErrNoFix = errors.New("no fix available")

// PositioningClient is responsible for all communication with a positioning daemon.
type PositioningClient struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewPositioningClient creates a new client for the positioning service.
func NewPositioningClient(baseURL string, logger zerolog.Logger) *PositioningClient {
	return &PositioningClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger.With().Str("client", "positioning-service").Logger(),
	}
}

// ListProviders fetches every provider registered on the positioning service.
func (c *PositioningClient) ListProviders(ctx context.Context) ([]providers.Descriptor, error) {
	var descriptors []providers.Descriptor
	if err := c.getJSON(ctx, c.baseURL+"/providers", &descriptors); err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}

	c.logger.Debug().Int("count", len(descriptors)).Msg("Fetched provider list")
	return descriptors, nil
}

// LatestFix fetches the most recent fix reported by provider.
func (c *PositioningClient) LatestFix(ctx context.Context, provider string) (locations.Fix, error) {
	var fix locations.Fix
	endpoint := fmt.Sprintf("%s/providers/%s/fix", c.baseURL, url.PathEscape(provider))
	if err := c.getJSON(ctx, endpoint, &fix); err != nil {
		return locations.Fix{}, fmt.Errorf("failed to fetch fix from %s: %w", provider, err)
	}
	if fix.Provider == "" {
		fix.Provider = provider
	}

	c.logger.Debug().Str("provider", provider).Float64("lat", fix.Latitude).Float64("lon", fix.Longitude).Msg("Fetched latest fix")
	return fix, nil
}

func (c *PositioningClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNoFix
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("positioning service returned unexpected status code: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

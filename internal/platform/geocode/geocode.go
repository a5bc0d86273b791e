// Package geocode resolves free-text postal addresses to coordinates
// through the OpenCage forward-geocoding API.
package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/timeouts"
	"github.com/manojdintakurti/hokie-event-sphere/internal/domain/models"
)

// Client calls the geocoder. Lookups are best-effort: a profile save never
// fails because the geocoder is down.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *zap.Logger
}

func New(baseURL, apiKey string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeouts.Outbound()},
		log:     log,
	}
}

// Forward resolves an address string to coordinates. Returns nil without
// error when the geocoder found nothing.
func (c *Client) Forward(ctx context.Context, address string) (*models.Coordinates, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("key", c.apiKey)
	q.Set("limit", "1")
	q.Set("no_annotations", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/geocode/v1/json?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var payload struct {
		Results []struct {
			Geometry struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode geocoder response: %w", err)
	}
	if len(payload.Results) == 0 {
		c.log.Debug("geocoder found no match", zap.String("address", address))
		return nil, nil
	}
	return &models.Coordinates{
		Latitude:  payload.Results[0].Geometry.Lat,
		Longitude: payload.Results[0].Geometry.Lng,
	}, nil
}

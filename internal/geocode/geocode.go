// Package geocode resolves coordinates into human-readable locality and
// country names using the BigDataCloud reverse-geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/edgard/historybot/internal/config"
)

// ErrGeocoding wraps transport failures and non-success HTTP statuses.
var ErrGeocoding = errors.New("geocoding request failed")

const localityLanguage = "en"

const maxResponseBytes = 1 << 20

// Result holds the parsed reverse-geocoding response. Both fields are
// optional in the API; an empty Locality is a normal, reportable outcome,
// not an error.
type Result struct {
	Locality    string `json:"locality"`
	CountryName string `json:"countryName"`
}

// Geocoder resolves a latitude/longitude pair into a Result.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (*Result, error)
}

// Client implements Geocoder against a BigDataCloud-compatible endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a geocoding client with the configured base URL and
// per-call timeout.
func NewClient(cfg config.GeocodeConfig, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log.With("component", "geocode"),
	}
}

// Reverse calls the reverse-geocoding endpoint with a fixed English
// locality language and parses the locality and country fields.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (*Result, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("localityLanguage", localityLanguage)

	reqURL := fmt.Sprintf("%s/data/reverse-geocode-client?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrGeocoding, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeocoding, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.log.WarnContext(ctx, "Failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status code %d", ErrGeocoding, resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", ErrGeocoding, err)
	}

	c.log.DebugContext(ctx, "Reverse geocoding finished",
		"latitude", lat,
		"longitude", lon,
		"locality", result.Locality,
		"country", result.CountryName)

	return &result, nil
}

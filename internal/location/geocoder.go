// Package location resolves a device's street address to a collection area:
// device address lookup, geocoding, projection, and zone matching.
package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/randytsao24/wastewizard/internal/models"
	"github.com/randytsao24/wastewizard/internal/observability"
	"github.com/randytsao24/wastewizard/internal/outcome"
)

const geocodeUpstream = "geocode"

// GeocodeStatus is the status field of a geocoding response
type GeocodeStatus string

const (
	StatusOK             GeocodeStatus = "OK"
	StatusZeroResults    GeocodeStatus = "ZERO_RESULTS"
	StatusOverQueryLimit GeocodeStatus = "OVER_QUERY_LIMIT"
	StatusRequestDenied  GeocodeStatus = "REQUEST_DENIED"
	StatusInvalidRequest GeocodeStatus = "INVALID_REQUEST"
	StatusUnknownError   GeocodeStatus = "UNKNOWN_ERROR"
)

// Geocoder converts a street address to coordinates with the Google
// Geocoding API. Each call makes exactly one request.
type Geocoder struct {
	client       *http.Client
	baseURL      string
	apiKey       string
	regionSuffix string
	logger       *zap.Logger
	metrics      *observability.Collector
}

// GeocoderConfig configures the geocoding endpoint
type GeocoderConfig struct {
	BaseURL      string
	APIKey       string
	RegionSuffix string // appended to every address, e.g. "Toronto, ON"
	Timeout      time.Duration
}

// NewGeocoder creates a new geocoder
func NewGeocoder(cfg GeocoderConfig, logger *zap.Logger, metrics *observability.Collector) *Geocoder {
	return &Geocoder{
		client:       &http.Client{Timeout: cfg.Timeout},
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		regionSuffix: cfg.RegionSuffix,
		logger:       logger,
		metrics:      metrics,
	}
}

// SanitizeAddress keeps ASCII letters, digits and spaces, and collapses runs
// of spaces to one.
func SanitizeAddress(address string) string {
	var sb strings.Builder
	for _, r := range address {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
			sb.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// Query returns the full address text sent to the geocoder.
func (g *Geocoder) Query(address string) string {
	q := SanitizeAddress(address)
	if g.regionSuffix != "" {
		q += ", " + g.regionSuffix
	}
	return q
}

// Geocode returns the coordinates of the first result for address.
// Transport failures, non-2xx statuses and undecodable bodies are
// RemoteUnavailable; a response whose status is not OK is AddressNotFound.
func (g *Geocoder) Geocode(ctx context.Context, address string) (c models.Coordinate, err error) {
	start := time.Now()
	defer func() { g.metrics.ObserveUpstream(geocodeUpstream, start, err) }()

	params := url.Values{}
	params.Set("address", g.Query(address))
	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return c, outcome.Fail("geocode", outcome.RemoteUnavailable, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return c, outcome.Fail("geocode", outcome.RemoteUnavailable, fmt.Errorf("fetching geocode: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c, outcome.Fail("geocode", outcome.RemoteUnavailable, fmt.Errorf("geocode API returned status %d", resp.StatusCode))
	}

	var result geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return c, outcome.Fail("geocode", outcome.RemoteUnavailable, fmt.Errorf("parsing response: %w", err))
	}

	if result.Status != StatusOK || len(result.Results) == 0 {
		g.logger.Info("address not geocoded",
			zap.String("status", string(result.Status)),
			zap.String("error_message", result.ErrorMessage),
		)
		return c, outcome.Fail("geocode", outcome.AddressNotFound, fmt.Errorf("geocode status %s", result.Status))
	}

	loc := result.Results[0].Geometry.Location
	g.logger.Debug("address geocoded", zap.Float64("lat", loc.Lat), zap.Float64("lng", loc.Lng))
	return models.Coordinate{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// API response structures
type geocodeResponse struct {
	Status       GeocodeStatus `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location models.Coordinate `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

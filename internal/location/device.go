package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/randytsao24/wastewizard/internal/observability"
	"github.com/randytsao24/wastewizard/internal/outcome"
)

const deviceAddressUpstream = "device_address"

// Device identifies the speaker a request came from and how to reach the
// platform's device settings API on its behalf.
type Device struct {
	ID          string
	APIEndpoint string
	AccessToken string
}

// DeviceAddress is the body of a successful device address lookup
type DeviceAddress struct {
	AddressLine1   string `json:"addressLine1"`
	AddressLine2   string `json:"addressLine2"`
	AddressLine3   string `json:"addressLine3"`
	City           string `json:"city"`
	StateOrRegion  string `json:"stateOrRegion"`
	DistrictCounty string `json:"districtOrCounty"`
	CountryCode    string `json:"countryCode"`
	PostalCode     string `json:"postalCode"`
}

// DeviceAddressClient reads the street address configured on a device.
type DeviceAddressClient struct {
	client  *http.Client
	city    string
	logger  *zap.Logger
	metrics *observability.Collector
}

// NewDeviceAddressClient creates a client that only accepts addresses in city.
func NewDeviceAddressClient(city string, timeout time.Duration, logger *zap.Logger, metrics *observability.Collector) *DeviceAddressClient {
	return &DeviceAddressClient{
		client:  &http.Client{Timeout: timeout},
		city:    city,
		logger:  logger,
		metrics: metrics,
	}
}

// Lookup returns the first address line of the device's address.
//
//	no device id          AddressNotFound (simulator)
//	no access token       PermissionDenied
//	200, other city       NotInServiceArea
//	204                   AddressNotFound
//	403                   PermissionDenied
//	anything else         TemporaryLookupFailure
func (c *DeviceAddressClient) Lookup(ctx context.Context, d Device) (string, error) {
	if d.ID == "" {
		c.logger.Info("request has no device id")
		return "", outcome.Fail("device address", outcome.AddressNotFound, nil)
	}
	if d.AccessToken == "" {
		c.logger.Info("request has no api access token")
		return "", outcome.Fail("device address", outcome.PermissionDenied, nil)
	}

	addr, status, err := c.fetch(ctx, d)
	if err != nil {
		return "", outcome.Fail("device address", outcome.TemporaryLookupFailure, err)
	}

	switch status {
	case http.StatusOK:
		if !strings.EqualFold(strings.TrimSpace(addr.City), c.city) {
			c.logger.Info("device outside service area", zap.String("city", addr.City))
			return "", outcome.Fail("device address", outcome.NotInServiceArea, nil)
		}
		if strings.TrimSpace(addr.AddressLine1) == "" {
			return "", outcome.Fail("device address", outcome.AddressNotFound, nil)
		}
		return addr.AddressLine1, nil
	case http.StatusNoContent:
		return "", outcome.Fail("device address", outcome.AddressNotFound, nil)
	case http.StatusForbidden:
		return "", outcome.Fail("device address", outcome.PermissionDenied, nil)
	default:
		return "", outcome.Fail("device address", outcome.TemporaryLookupFailure,
			fmt.Errorf("device address API returned status %d", status))
	}
}

func (c *DeviceAddressClient) fetch(ctx context.Context, d Device) (addr DeviceAddress, status int, err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveUpstream(deviceAddressUpstream, start, err) }()

	url := fmt.Sprintf("%s/v1/devices/%s/settings/address", strings.TrimRight(d.APIEndpoint, "/"), d.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return addr, 0, fmt.Errorf("building device address request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.AccessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return addr, 0, fmt.Errorf("fetching device address: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("device address response", zap.Int("status", resp.StatusCode))
	if resp.StatusCode != http.StatusOK {
		return addr, resp.StatusCode, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(&addr); err != nil {
		return addr, resp.StatusCode, fmt.Errorf("parsing device address: %w", err)
	}
	return addr, resp.StatusCode, nil
}

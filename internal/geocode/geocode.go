package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Address is the best-effort result of a reverse lookup; any field may
// be empty.
type Address struct {
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
	Province string `json:"province,omitempty"`
	Region   string `json:"region,omitempty"`
}

// Resolver maps a coordinate pair to a postal address. A nil Address
// with a nil error means nothing was found.
type Resolver interface {
	Resolve(ctx context.Context, lat, lng float64) (*Address, error)
}

// Client talks to a Nominatim-compatible reverse geocoding endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *zap.SugaredLogger
}

func NewClient(baseURL, userAgent string, timeout time.Duration, logger *zap.SugaredLogger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		userAgent:  userAgent,
		logger:     logger,
	}
}

type nominatimResponse struct {
	Error   string `json:"error"`
	Address struct {
		Road    string `json:"road"`
		House   string `json:"house_number"`
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		County  string `json:"county"`
		State   string `json:"state"`
	} `json:"address"`
}

func (c *Client) Resolve(ctx context.Context, lat, lng float64) (*Address, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lng))

	reqURL := fmt.Sprintf("%s/reverse?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorw("reverse geocode request failed", "error", err)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Errorw("reverse geocode returned error", "status_code", resp.StatusCode)
		return nil, fmt.Errorf("geocoding API error: status %d", resp.StatusCode)
	}

	var payload nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// Nominatim reports "unable to geocode" in-band rather than via status
	if payload.Error != "" {
		return nil, nil
	}

	addr := &Address{
		City:     firstNonEmpty(payload.Address.City, payload.Address.Town, payload.Address.Village),
		Province: payload.Address.County,
		Region:   payload.Address.State,
	}
	if payload.Address.Road != "" {
		addr.Address = payload.Address.Road
		if payload.Address.House != "" {
			addr.Address = payload.Address.Road + " " + payload.Address.House
		}
	}

	return addr, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Package elevation queries an open-elevation compatible lookup service
// and reduces a route path to its total climb. The enricher is strictly
// best effort: every failure degrades to "unknown" rather than failing
// the route.
package elevation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pedalpath/server/internal/lib/geo"
)

const (
	defaultBaseURL = "https://api.open-elevation.com"
	defaultTimeout = 15 * time.Second

	// The lookup endpoint rejects oversized batches; longer paths are
	// sampled down to at most this many points.
	maxLookupPoints = 100
)

// Config holds the elevation service settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client calls the elevation lookup service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates an elevation client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type lookupLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type lookupRequest struct {
	Locations []lookupLocation `json:"locations"`
}

type lookupResponse struct {
	Results []struct {
		Elevation float64 `json:"elevation"`
	} `json:"results"`
}

// TotalAscent returns the sum of positive elevation deltas along the
// path, in meters. Descents do not offset climbs.
func (c *Client) TotalAscent(ctx context.Context, path []geo.Point) (float64, error) {
	if len(path) < 2 {
		return 0, nil
	}

	sampled := samplePath(path, maxLookupPoints)
	elevations, err := c.lookup(ctx, sampled)
	if err != nil {
		return 0, err
	}

	var gain float64
	for i := 1; i < len(elevations); i++ {
		if delta := elevations[i] - elevations[i-1]; delta > 0 {
			gain += delta
		}
	}
	return gain, nil
}

func (c *Client) lookup(ctx context.Context, points []geo.Point) ([]float64, error) {
	request := lookupRequest{Locations: make([]lookupLocation, len(points))}
	for i, p := range points {
		request.Locations[i] = lookupLocation{Latitude: p.Latitude, Longitude: p.Longitude}
	}

	jsonBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/lookup", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("elevation service returned %d: %s", resp.StatusCode, string(body))
	}

	var response lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(response.Results) != len(points) {
		return nil, fmt.Errorf("elevation service returned %d results for %d points", len(response.Results), len(points))
	}

	elevations := make([]float64, len(response.Results))
	for i, r := range response.Results {
		elevations[i] = r.Elevation
	}
	return elevations, nil
}

// samplePath thins the path to at most limit points with a constant
// stride, always keeping the first point. The stride is ceil(n/limit) so
// the sample spans the whole route.
func samplePath(path []geo.Point, limit int) []geo.Point {
	if len(path) <= limit {
		return path
	}
	stride := int(math.Ceil(float64(len(path)) / float64(limit)))
	sampled := make([]geo.Point, 0, limit)
	for i := 0; i < len(path); i += stride {
		sampled = append(sampled, path[i])
	}
	return sampled
}

// Package graphhopper adapts the GraphHopper Directions API to the
// canonical route schema. It is the second backend in the fallback
// chain; the hosted API caps free-tier requests at five route points,
// so callers must truncate intermediate stops to three before dispatch.
package graphhopper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/pedalpath/server/internal/lib/geo"
	"github.com/pedalpath/server/internal/lib/route"
)

const (
	defaultBaseURL = "https://graphhopper.com/api/1"
	defaultTimeout = 15 * time.Second

	// Hosted-API limit: start + end + at most 3 intermediate stops.
	maxIntermediateStops = 3

	pointsPrecision = 5
)

// Config holds the GraphHopper endpoint settings. An API key is required
// by the hosted service.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client calls the GraphHopper routing API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a GraphHopper client.
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
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Name returns the provenance tag recorded on successful results.
func (c *Client) Name() string { return "graphhopper" }

// MaxIntermediateStops returns the hosted API's stop cap.
func (c *Client) MaxIntermediateStops() int { return maxIntermediateStops }

type instruction struct {
	Text       string  `json:"text"`
	Sign       int     `json:"sign"`
	Distance   float64 `json:"distance"` // meters
	Time       int64   `json:"time"`     // milliseconds
	StreetName string  `json:"street_name"`
}

type path struct {
	Points       string        `json:"points"` // encoded polyline
	Distance     float64       `json:"distance"`
	Time         int64         `json:"time"` // milliseconds
	Instructions []instruction `json:"instructions"`
}

type routeResponse struct {
	Paths []path `json:"paths"`
}

// Route requests a bike route through the given waypoints. The waypoint
// list must already respect MaxIntermediateStops.
func (c *Client) Route(ctx context.Context, waypoints []route.Waypoint, opts route.Options) (*route.Result, error) {
	if len(waypoints) < 2 {
		return nil, fmt.Errorf("need at least 2 waypoints, got %d", len(waypoints))
	}
	if len(waypoints) > maxIntermediateStops+2 {
		return nil, fmt.Errorf("%w: %d points, limit %d", route.ErrTooManyStops, len(waypoints), maxIntermediateStops+2)
	}

	query := url.Values{}
	for _, wp := range waypoints {
		query.Add("point", fmt.Sprintf("%v,%v", wp.Point.Latitude, wp.Point.Longitude))
	}
	query.Set("vehicle", "bike")
	query.Set("locale", "en")
	query.Set("instructions", "true")
	query.Set("points_encoded", "true")
	query.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/route?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("graphhopper returned %d: %s", resp.StatusCode, string(body))
	}

	var response routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(response.Paths) == 0 {
		return nil, fmt.Errorf("%w: empty paths", route.ErrNoRoute)
	}

	return c.normalize(response.Paths[0], opts)
}

func (c *Client) normalize(p path, opts route.Options) (*route.Result, error) {
	points, err := geo.DecodePolyline(p.Points, pointsPrecision)
	if err != nil {
		return nil, fmt.Errorf("%w: path points: %v", route.ErrBadGeometry, err)
	}

	instructions := []route.Instruction{route.StartInstruction(opts)}
	for _, in := range p.Instructions {
		instructionType := route.FromGraphHopperSign(in.Sign)
		// The backend's own start and finish markers are replaced by the
		// synthesized boundary instructions.
		if instructionType == route.TypeStart || instructionType == route.TypeArrive {
			continue
		}
		street := in.StreetName
		if street == "" {
			street = route.ExtractStreetName(in.Text)
		}
		instructions = append(instructions, route.Instruction{
			Type:            instructionType,
			Text:            in.Text,
			DistanceMeters:  in.Distance,
			DurationSeconds: float64(in.Time) / 1000,
			StreetName:      street,
		})
	}
	instructions = append(instructions, route.ArriveInstruction(opts))

	result := &route.Result{
		Path:            points,
		DistanceMeters:  p.Distance,
		DurationSeconds: float64(p.Time) / 1000,
		Instructions:    route.SuppressMicroInstructions(instructions),
		Source:          c.Name(),
	}

	c.logger.Debug("graphhopper route normalized",
		zap.Int("path_points", len(result.Path)),
		zap.Int("instructions", len(result.Instructions)),
		zap.Float64("distance_m", result.DistanceMeters))

	return result, nil
}

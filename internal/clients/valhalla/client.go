// Package valhalla adapts the Valhalla routing engine's bicycle costing
// API to the canonical route schema. Valhalla is the primary backend in
// the fallback chain: free to query, no API key, and its bicycle costing
// model is the best of the available engines.
package valhalla

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pedalpath/server/internal/lib/geo"
	"github.com/pedalpath/server/internal/lib/route"
)

const (
	defaultBaseURL = "https://valhalla1.openstreetmap.de"
	defaultTimeout = 20 * time.Second

	// Valhalla encodes leg shapes at 1e-6 degree resolution.
	shapePrecision = 6
)

// Config holds the Valhalla endpoint settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client calls a Valhalla routing instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Valhalla client. Zero-value config fields fall back
// to the public OSM instance and a 20 second timeout.
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

// Name returns the provenance tag recorded on successful results.
func (c *Client) Name() string { return "valhalla" }

// MaxIntermediateStops returns 0: Valhalla has no practical stop cap.
func (c *Client) MaxIntermediateStops() int { return 0 }

type location struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Type string  `json:"type"`
}

type bicycleOptions struct {
	BicycleType string  `json:"bicycle_type"`
	UseRoads    float64 `json:"use_roads"`
	UseHills    float64 `json:"use_hills"`
}

type routeRequest struct {
	Locations      []location `json:"locations"`
	Costing        string     `json:"costing"`
	CostingOptions struct {
		Bicycle bicycleOptions `json:"bicycle"`
	} `json:"costing_options"`
	DirectionsOptions struct {
		Units string `json:"units"`
	} `json:"directions_options"`
}

type tripSummary struct {
	Length float64 `json:"length"` // kilometers or miles per request units
	Time   float64 `json:"time"`   // seconds
}

type maneuver struct {
	Type        int      `json:"type"`
	Instruction string   `json:"instruction"`
	Length      float64  `json:"length"`
	Time        float64  `json:"time"`
	StreetNames []string `json:"street_names"`
}

type tripLeg struct {
	Shape     string      `json:"shape"`
	Summary   tripSummary `json:"summary"`
	Maneuvers []maneuver  `json:"maneuvers"`
}

type routeResponse struct {
	Trip struct {
		Legs    []tripLeg   `json:"legs"`
		Summary tripSummary `json:"summary"`
	} `json:"trip"`
}

// Route requests a bicycle route through the given waypoints and
// normalizes Valhalla's trip response into the canonical schema.
func (c *Client) Route(ctx context.Context, waypoints []route.Waypoint, opts route.Options) (*route.Result, error) {
	if len(waypoints) < 2 {
		return nil, fmt.Errorf("need at least 2 waypoints, got %d", len(waypoints))
	}

	request := routeRequest{Costing: "bicycle"}
	request.CostingOptions.Bicycle = bicycleOptions{
		BicycleType: "Hybrid",
		UseRoads:    0.5,
		UseHills:    0.5,
	}
	// Summary lengths come back in the requested unit; normalization below
	// always works from kilometers.
	request.DirectionsOptions.Units = "kilometers"
	for _, wp := range waypoints {
		request.Locations = append(request.Locations, location{
			Lat:  wp.Point.Latitude,
			Lon:  wp.Point.Longitude,
			Type: "break",
		})
	}

	jsonBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/route", bytes.NewReader(jsonBody))
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
		return nil, fmt.Errorf("valhalla returned %d: %s", resp.StatusCode, string(body))
	}

	var response routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(response.Trip.Legs) == 0 {
		return nil, fmt.Errorf("%w: trip has no legs", route.ErrNoRoute)
	}

	return c.normalize(response, opts)
}

// normalize flattens the trip's legs into one dense path and one
// canonical instruction list.
func (c *Client) normalize(response routeResponse, opts route.Options) (*route.Result, error) {
	var path []geo.Point
	instructions := []route.Instruction{route.StartInstruction(opts)}

	for _, leg := range response.Trip.Legs {
		points, err := geo.DecodePolyline(leg.Shape, shapePrecision)
		if err != nil {
			return nil, fmt.Errorf("%w: leg shape: %v", route.ErrBadGeometry, err)
		}
		// Leg boundaries repeat the break location.
		if len(path) > 0 && len(points) > 0 && points[0] == path[len(path)-1] {
			points = points[1:]
		}
		path = append(path, points...)

		for _, m := range leg.Maneuvers {
			instructionType := route.FromValhallaManeuver(m.Type)
			// Destination maneuvers fire at every break location; the
			// single synthesized arrival below replaces all of them.
			if instructionType == route.TypeArrive {
				continue
			}
			street := ""
			if len(m.StreetNames) > 0 {
				street = m.StreetNames[0]
			} else {
				street = route.ExtractStreetName(m.Instruction)
			}
			instructions = append(instructions, route.Instruction{
				Type:            instructionType,
				Text:            m.Instruction,
				DistanceMeters:  m.Length * 1000,
				DurationSeconds: m.Time,
				StreetName:      street,
			})
		}
	}
	instructions = append(instructions, route.ArriveInstruction(opts))

	result := &route.Result{
		Path:            path,
		DistanceMeters:  response.Trip.Summary.Length * 1000,
		DurationSeconds: response.Trip.Summary.Time,
		Instructions:    route.SuppressMicroInstructions(instructions),
		Source:          c.Name(),
	}

	c.logger.Debug("valhalla route normalized",
		zap.Int("path_points", len(result.Path)),
		zap.Int("instructions", len(result.Instructions)),
		zap.Float64("distance_m", result.DistanceMeters))

	return result, nil
}

// Package osrm adapts the OSRM HTTP API to the canonical route schema.
// It is the legacy third backend in the fallback chain, kept because the
// public demo server needs no key and still answers when the preferred
// engines are down.
package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pedalpath/server/internal/lib/geo"
	"github.com/pedalpath/server/internal/lib/route"
)

const (
	defaultBaseURL = "https://router.project-osrm.org"
	defaultTimeout = 15 * time.Second

	geometryPrecision = 5
)

// Config holds the OSRM endpoint settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client calls an OSRM routing instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates an OSRM client.
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
func (c *Client) Name() string { return "osrm" }

// MaxIntermediateStops returns 0: OSRM has no practical stop cap.
func (c *Client) MaxIntermediateStops() int { return 0 }

type stepManeuver struct {
	Type     string `json:"type"`
	Modifier string `json:"modifier"`
}

type step struct {
	Maneuver stepManeuver `json:"maneuver"`
	Name     string       `json:"name"`
	Distance float64      `json:"distance"` // meters
	Duration float64      `json:"duration"` // seconds
}

type leg struct {
	Steps []step `json:"steps"`
}

type osrmRoute struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
	Geometry string  `json:"geometry"`
	Legs     []leg   `json:"legs"`
}

type routeResponse struct {
	Code   string      `json:"code"`
	Routes []osrmRoute `json:"routes"`
}

// Route requests a bike route through the given waypoints. OSRM addresses
// coordinates as lon,lat pairs in the URL path.
func (c *Client) Route(ctx context.Context, waypoints []route.Waypoint, opts route.Options) (*route.Result, error) {
	if len(waypoints) < 2 {
		return nil, fmt.Errorf("need at least 2 waypoints, got %d", len(waypoints))
	}

	coords := make([]string, len(waypoints))
	for i, wp := range waypoints {
		coords[i] = fmt.Sprintf("%v,%v", wp.Point.Longitude, wp.Point.Latitude)
	}
	requestURL := fmt.Sprintf("%s/route/v1/bike/%s?steps=true&geometries=polyline&overview=full",
		c.baseURL, strings.Join(coords, ";"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
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
		return nil, fmt.Errorf("osrm returned %d: %s", resp.StatusCode, string(body))
	}

	var response routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if response.Code != "Ok" || len(response.Routes) == 0 {
		return nil, fmt.Errorf("%w: code %q, %d routes", route.ErrNoRoute, response.Code, len(response.Routes))
	}

	return c.normalize(response.Routes[0], opts)
}

func (c *Client) normalize(r osrmRoute, opts route.Options) (*route.Result, error) {
	points, err := geo.DecodePolyline(r.Geometry, geometryPrecision)
	if err != nil {
		return nil, fmt.Errorf("%w: route geometry: %v", route.ErrBadGeometry, err)
	}

	instructions := []route.Instruction{route.StartInstruction(opts)}
	for _, l := range r.Legs {
		for _, s := range l.Steps {
			instructionType := route.FromOSRMManeuver(s.Maneuver.Type, s.Maneuver.Modifier)
			// Depart and arrive steps fire per leg; the synthesized
			// boundary instructions stand in for all of them.
			if instructionType == route.TypeStart || instructionType == route.TypeArrive {
				continue
			}
			instructions = append(instructions, route.Instruction{
				Type:            instructionType,
				Text:            stepText(instructionType, s.Name),
				DistanceMeters:  s.Distance,
				DurationSeconds: s.Duration,
				StreetName:      s.Name,
			})
		}
	}
	instructions = append(instructions, route.ArriveInstruction(opts))

	result := &route.Result{
		Path:            points,
		DistanceMeters:  r.Distance,
		DurationSeconds: r.Duration,
		Instructions:    route.SuppressMicroInstructions(instructions),
		Source:          c.Name(),
	}

	c.logger.Debug("osrm route normalized",
		zap.Int("path_points", len(result.Path)),
		zap.Int("instructions", len(result.Instructions)),
		zap.Float64("distance_m", result.DistanceMeters))

	return result, nil
}

var stepPhrases = map[route.InstructionType]string{
	route.TypeTurnLeft:        "Turn left",
	route.TypeTurnRight:       "Turn right",
	route.TypeSharpLeft:       "Turn sharp left",
	route.TypeSharpRight:      "Turn sharp right",
	route.TypeSlightLeft:      "Turn slightly left",
	route.TypeSlightRight:     "Turn slightly right",
	route.TypeKeepLeft:        "Keep left",
	route.TypeKeepRight:       "Keep right",
	route.TypeUTurn:           "Make a U-turn",
	route.TypeRoundaboutEnter: "Enter the roundabout",
	route.TypeRoundaboutExit:  "Exit the roundabout",
	route.TypeContinue:        "Continue",
}

// stepText renders an instruction sentence; OSRM supplies structured
// maneuvers without human-readable text.
func stepText(instructionType route.InstructionType, street string) string {
	phrase := stepPhrases[instructionType]
	if street == "" {
		return phrase
	}
	if instructionType == route.TypeContinue {
		return phrase + " on " + street
	}
	return phrase + " onto " + street
}

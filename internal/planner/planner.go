// Package planner turns a distance target and route-flavor preference into
// a small ordered waypoint list by asking a language model for semantically
// meaningful stops, then enforcing structural correctness on whatever the
// model returns.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/pedalpath/server/internal/lib/geo"
	"github.com/pedalpath/server/internal/lib/route"
)

var (
	// ErrUnavailable means the model could not be reached at all (missing
	// credentials or transport failure). The orchestrator decides the fallback.
	ErrUnavailable = errors.New("waypoint planner unavailable")

	// ErrParse means the model replied but no JSON object could be recovered.
	ErrParse = errors.New("no valid JSON object in model response")

	// ErrInsufficientWaypoints means fewer than two waypoints survived validation.
	ErrInsufficientWaypoints = errors.New("not enough valid waypoints in model response")
)

// Config holds the planner's model settings. BaseURL is overridable so
// tests can point the client at a fake server.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Planner invokes the language model and validates its reply.
type Planner struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// New creates a Planner. A missing API key yields a planner whose Plan
// calls fail with ErrUnavailable rather than a construction error, so the
// orchestrator can still run with planning degraded.
func New(cfg Config, logger *zap.Logger) *Planner {
	p := &Planner{
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger,
	}
	if p.model == "" {
		p.model = openai.GPT4Dot1
	}
	if p.timeout <= 0 {
		p.timeout = 30 * time.Second
	}

	if cfg.APIKey != "" {
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		p.client = openai.NewClientWithConfig(clientCfg)
	}
	return p
}

// Plan holds the validated waypoint list plus the model's display-only
// metadata. The intermediates are kept separately from the pinned
// endpoints so a provider-specific cap can re-derive a shorter list from
// the original parsed response instead of compounding truncations.
type Plan struct {
	start, end    geo.Point
	intermediates []geo.Point
	Metadata      route.PlannerMetadata
}

// NewPlan assembles a plan directly from already-validated coordinates,
// bypassing the model. Used by callers that fake or precompute planning.
func NewPlan(start, end geo.Point, intermediates []geo.Point, metadata route.PlannerMetadata) *Plan {
	metadata.WaypointCount = len(intermediates) + 2
	return &Plan{
		start:         start,
		end:           end,
		intermediates: intermediates,
		Metadata:      metadata,
	}
}

// Waypoints returns the full pinned list: the caller's exact start, every
// intermediate the model proposed, and the caller's exact end.
func (p *Plan) Waypoints() []route.Waypoint {
	return p.waypointList(p.intermediates)
}

// Truncated returns the pinned list with at most maxIntermediate stops,
// taking the model's first entries in their original order.
func (p *Plan) Truncated(maxIntermediate int) []route.Waypoint {
	intermediates := p.intermediates
	if maxIntermediate >= 0 && len(intermediates) > maxIntermediate {
		intermediates = intermediates[:maxIntermediate]
	}
	return p.waypointList(intermediates)
}

func (p *Plan) waypointList(intermediates []geo.Point) []route.Waypoint {
	waypoints := make([]route.Waypoint, 0, len(intermediates)+2)
	waypoints = append(waypoints, route.Waypoint{Point: p.start, Role: route.RoleStart})
	for _, point := range intermediates {
		waypoints = append(waypoints, route.Waypoint{Point: point, Role: route.RoleVia})
	}
	waypoints = append(waypoints, route.Waypoint{Point: p.end, Role: route.RoleEnd})
	return waypoints
}

// PlanWaypoints asks the model for a waypoint list matching the rider's
// preferences. The returned plan always begins at the caller's exact start
// and ends at the caller's exact end, regardless of what the model put at
// its own boundaries.
func (p *Planner) PlanWaypoints(ctx context.Context, prefs route.Preferences) (*Plan, error) {
	if p.client == nil {
		return nil, fmt.Errorf("%w: no API key configured", ErrUnavailable)
	}

	systemPrompt, userPrompt := buildPrompts(prefs)

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", ErrUnavailable)
	}

	raw := resp.Choices[0].Message.Content
	parsed, err := parseModelResponse(raw)
	if err != nil {
		p.logger.Warn("model reply was not recoverable JSON",
			zap.Int("reply_length", len(raw)))
		return nil, err
	}

	return p.buildPlan(parsed, prefs)
}

// endpointSnapMeters is how close a model boundary entry must be to the
// requested start or end before it is treated as an echo of that endpoint
// and dropped rather than kept as an intermediate stop.
const endpointSnapMeters = 15.0

// buildPlan validates the parsed waypoints and forces structural
// correctness: entries without numeric coordinates are dropped, the
// caller's exact start/end are pinned around whatever remains, and model
// entries that merely echo the requested endpoints are discarded so the
// pinned list carries no duplicates.
func (p *Planner) buildPlan(parsed *modelResponse, prefs route.Preferences) (*Plan, error) {
	valid := make([]geo.Point, 0, len(parsed.Waypoints))
	for _, wp := range parsed.Waypoints {
		if wp.Lat == nil || wp.Lon == nil {
			continue
		}
		point := geo.Point{Latitude: *wp.Lat, Longitude: *wp.Lon}
		if !point.Valid() {
			continue
		}
		valid = append(valid, point)
	}

	if len(valid) < 2 {
		return nil, ErrInsufficientWaypoints
	}

	end := prefs.Destination()
	intermediates := valid
	if geo.Distance(intermediates[0], prefs.Start) < endpointSnapMeters {
		intermediates = intermediates[1:]
	}
	if n := len(intermediates); n > 0 && geo.Distance(intermediates[n-1], end) < endpointSnapMeters {
		intermediates = intermediates[:n-1]
	}

	plan := &Plan{
		start:         prefs.Start,
		end:           end,
		intermediates: intermediates,
		Metadata: route.PlannerMetadata{
			RouteName:   parsed.RouteName,
			Description: parsed.Description,
			Difficulty:  parsed.Difficulty,
		},
	}
	plan.Metadata.WaypointCount = len(plan.intermediates) + 2

	p.logger.Info("planned waypoints",
		zap.Int("waypoints", plan.Metadata.WaypointCount),
		zap.String("route_name", plan.Metadata.RouteName))

	return plan, nil
}

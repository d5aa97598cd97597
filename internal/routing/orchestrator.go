package routing

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pedalpath/server/internal/lib/geo"
	"github.com/pedalpath/server/internal/lib/route"
	"github.com/pedalpath/server/internal/planner"
)

// WaypointPlanner produces an LLM-assisted waypoint plan. Satisfied by
// *planner.Planner; faked in tests.
type WaypointPlanner interface {
	PlanWaypoints(ctx context.Context, prefs route.Preferences) (*planner.Plan, error)
}

// ElevationSource reports total climb along a path. Satisfied by
// *elevation.Client; faked in tests.
type ElevationSource interface {
	TotalAscent(ctx context.Context, path []geo.Point) (float64, error)
}

// Orchestrator drives one route generation end to end. Providers are
// attempted strictly in order, one in flight at a time; the first
// success is enriched and returned.
type Orchestrator struct {
	providers []Provider
	planner   WaypointPlanner
	elevation ElevationSource
	logger    *zap.Logger
}

// NewOrchestrator assembles the pipeline. The provider list must end
// with a generator that cannot fail; planner and elevation may be nil,
// which disables planning and elevation enrichment respectively.
func NewOrchestrator(providers []Provider, wp WaypointPlanner, es ElevationSource, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		providers: providers,
		planner:   wp,
		elevation: es,
		logger:    logger,
	}
}

// Generate plans waypoints, walks the provider chain and enriches the
// first successful result with elevation gain and a difficulty rating.
func (o *Orchestrator) Generate(ctx context.Context, prefs route.Preferences) (*route.Result, error) {
	if err := validate(prefs); err != nil {
		return nil, err
	}

	plan := o.plan(ctx, prefs)

	waypoints := route.DirectWaypoints(prefs)
	if plan != nil {
		waypoints = plan.Waypoints()
	}

	opts := route.OptionsFrom(prefs)

	result, err := o.attempt(ctx, plan, waypoints, opts)
	if err != nil {
		return nil, err
	}

	if plan != nil {
		metadata := plan.Metadata
		result.Planner = &metadata
	} else if o.planner != nil {
		// Planning was configured but degraded; the caller can tell this
		// apart from planning never having been enabled.
		result.Planner = &route.PlannerMetadata{
			RouteName:     "Direct Route",
			Description:   "Direct route; waypoint planning was unavailable",
			WaypointCount: len(waypoints),
		}
	}
	o.enrich(ctx, result)
	result.Difficulty = route.RateDifficulty(result.DistanceMeters, result.ElevationGain, prefs)

	o.logger.Info("route generated",
		zap.String("source", result.Source),
		zap.Float64("distance_m", result.DistanceMeters),
		zap.String("difficulty", string(result.Difficulty)))

	return result, nil
}

func validate(prefs route.Preferences) error {
	if !prefs.Start.Valid() {
		return fmt.Errorf("%w: start coordinate out of range", ErrInvalidRequest)
	}
	if prefs.End != nil && !prefs.End.Valid() {
		return fmt.Errorf("%w: end coordinate out of range", ErrInvalidRequest)
	}
	if prefs.TargetDistance < 0 {
		return fmt.Errorf("%w: negative target distance", ErrInvalidRequest)
	}
	return nil
}

// plan runs the waypoint planner when one is configured. Planning
// failures degrade to direct-point routing, never to a request failure.
func (o *Orchestrator) plan(ctx context.Context, prefs route.Preferences) *planner.Plan {
	if o.planner == nil {
		return nil
	}
	plan, err := o.planner.PlanWaypoints(ctx, prefs)
	if err != nil {
		o.logger.Warn("waypoint planning failed, routing direct", zap.Error(err))
		return nil
	}
	return plan
}

// attempt walks the provider chain sequentially. A capped provider gets
// a waypoint list re-derived from the original plan so truncation never
// compounds across attempts.
func (o *Orchestrator) attempt(ctx context.Context, plan *planner.Plan, waypoints []route.Waypoint, opts route.Options) (*route.Result, error) {
	for _, provider := range o.providers {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		dispatch := waypoints
		if stopCap := provider.MaxIntermediateStops(); stopCap > 0 {
			dispatch = truncated(plan, waypoints, stopCap)
		}

		result, err := provider.Route(ctx, dispatch, opts)
		if err == nil {
			return result, nil
		}

		if errors.Is(err, route.ErrBadGeometry) {
			o.logger.Error("backend returned malformed geometry",
				zap.String("provider", provider.Name()), zap.Error(err))
		} else {
			o.logger.Warn("provider failed, trying next",
				zap.String("provider", provider.Name()), zap.Error(err))
		}
	}
	return nil, ErrProvidersExhausted
}

func truncated(plan *planner.Plan, waypoints []route.Waypoint, maxIntermediate int) []route.Waypoint {
	if plan != nil {
		return plan.Truncated(maxIntermediate)
	}
	if len(waypoints) <= maxIntermediate+2 {
		return waypoints
	}
	capped := make([]route.Waypoint, 0, maxIntermediate+2)
	capped = append(capped, waypoints[:maxIntermediate+1]...)
	capped = append(capped, waypoints[len(waypoints)-1])
	return capped
}

// enrich fills in elevation gain. Elevation failures degrade the field
// to nil and never fail the request.
func (o *Orchestrator) enrich(ctx context.Context, result *route.Result) {
	if o.elevation == nil {
		return
	}
	gain, err := o.elevation.TotalAscent(ctx, result.Path)
	if err != nil {
		o.logger.Warn("elevation enrichment failed", zap.Error(err))
		return
	}
	result.ElevationGain = &gain
}

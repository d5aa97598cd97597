package routing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedalpath/server/internal/lib/geo"
	"github.com/pedalpath/server/internal/lib/route"
	"github.com/pedalpath/server/internal/lib/units"
)

func TestLocalFallback_Loop(t *testing.T) {
	start := geo.Point{Latitude: 39.95, Longitude: -75.16}
	waypoints := []route.Waypoint{
		{Point: start, Role: route.RoleStart},
		{Point: start, Role: route.RoleEnd},
	}
	opts := route.Options{Units: units.Metric, TargetDistanceMeters: 10000}

	result, err := NewLocalFallback().Route(context.Background(), waypoints, opts)
	require.NoError(t, err)

	assert.Equal(t, "local", result.Source)
	assert.Equal(t, start, result.Path[0])
	assert.Equal(t, start, result.Path[len(result.Path)-1])

	// The circle's circumference tracks the target distance.
	assert.InDelta(t, 10000, result.DistanceMeters, 1000)
	assert.InDelta(t, result.DistanceMeters/(15000.0/3600), result.DurationSeconds, 1)

	require.GreaterOrEqual(t, len(result.Instructions), 3)
	assert.Equal(t, route.TypeStart, result.Instructions[0].Type)
	assert.Equal(t, route.TypeArrive, result.Instructions[len(result.Instructions)-1].Type)
}

func TestLocalFallback_PointToPoint(t *testing.T) {
	waypoints := []route.Waypoint{
		{Point: geo.Point{Latitude: 39.95, Longitude: -75.16}, Role: route.RoleStart},
		{Point: geo.Point{Latitude: 39.99, Longitude: -75.20}, Role: route.RoleEnd},
	}
	opts := route.Options{Units: units.Metric, TargetDistanceMeters: 12000}

	result, err := NewLocalFallback().Route(context.Background(), waypoints, opts)
	require.NoError(t, err)

	assert.Equal(t, waypoints[0].Point, result.Path[0])
	assert.Equal(t, waypoints[1].Point, result.Path[len(result.Path)-1])

	// The sway stretches the path beyond the straight line toward the target.
	straight := geo.Distance(waypoints[0].Point, waypoints[1].Point)
	assert.Greater(t, result.DistanceMeters, straight)
}

func TestLocalFallback_ShortTargetStaysDirect(t *testing.T) {
	waypoints := []route.Waypoint{
		{Point: geo.Point{Latitude: 39.95, Longitude: -75.16}, Role: route.RoleStart},
		{Point: geo.Point{Latitude: 39.99, Longitude: -75.20}, Role: route.RoleEnd},
	}
	// Target below the straight-line distance: no sway is added.
	opts := route.Options{Units: units.Metric, TargetDistanceMeters: 100}

	result, err := NewLocalFallback().Route(context.Background(), waypoints, opts)
	require.NoError(t, err)

	straight := geo.Distance(waypoints[0].Point, waypoints[1].Point)
	assert.InDelta(t, straight, result.DistanceMeters, straight*0.01)
}

func TestLocalFallback_ZeroTargetLoopStillRoutes(t *testing.T) {
	start := geo.Point{Latitude: 39.95, Longitude: -75.16}
	waypoints := []route.Waypoint{
		{Point: start, Role: route.RoleStart},
		{Point: start, Role: route.RoleEnd},
	}

	result, err := NewLocalFallback().Route(context.Background(), waypoints, route.Options{})
	require.NoError(t, err)
	assert.Positive(t, result.DistanceMeters)
}

package routing

import (
	"context"
	"math"

	"github.com/pedalpath/server/internal/lib/geo"
	"github.com/pedalpath/server/internal/lib/route"
)

const (
	// Assumed cycling pace for synthesized routes.
	paceMetersPerSecond = 15000.0 / 3600

	// Dense-path resolution per waypoint segment.
	segmentSamples = 32

	// Lateral oscillations per segment.
	segmentWaves = 2

	circleSamples = 96

	metersPerDegreeLat = 111320.0
)

// LocalFallback synthesizes a plausible route without any network call.
// It terminates the fallback chain and never fails: whatever the
// upstream backends' state, the rider always gets a path to follow.
type LocalFallback struct{}

// NewLocalFallback creates the deterministic last-resort generator.
func NewLocalFallback() *LocalFallback { return &LocalFallback{} }

// Name returns the provenance tag recorded on synthesized results.
func (f *LocalFallback) Name() string { return "local" }

// MaxIntermediateStops returns 0: any number of stops can be connected.
func (f *LocalFallback) MaxIntermediateStops() int { return 0 }

// Route synthesizes a paced route through the waypoints. A loop request
// (first and last waypoint coincide, no other stops) becomes a circle
// whose circumference approximates the target distance; anything else
// becomes linear interpolation between stops with a sinusoidal lateral
// sway sized so the path length approaches the target.
func (f *LocalFallback) Route(_ context.Context, waypoints []route.Waypoint, opts route.Options) (*route.Result, error) {
	var path []geo.Point
	if isTrivialLoop(waypoints) {
		path = circlePath(waypoints[0].Point, opts.TargetDistanceMeters)
	} else {
		path = swayPath(waypoints, opts.TargetDistanceMeters)
	}

	distance := geo.PathLength(path)
	duration := distance / paceMetersPerSecond

	instructions := []route.Instruction{route.StartInstruction(opts)}
	instructions = append(instructions, route.Instruction{
		Type:            route.TypeContinue,
		Text:            "Follow the suggested path toward your destination",
		DistanceMeters:  distance,
		DurationSeconds: duration,
	})
	instructions = append(instructions, route.ArriveInstruction(opts))

	return &route.Result{
		Path:            path,
		DistanceMeters:  distance,
		DurationSeconds: duration,
		Instructions:    instructions,
		Source:          f.Name(),
	}, nil
}

func isTrivialLoop(waypoints []route.Waypoint) bool {
	if len(waypoints) != 2 {
		return false
	}
	return waypoints[0].Point == waypoints[1].Point
}

// circlePath traces a circle through the start point with circumference
// close to the target distance. The circle's center sits due north so
// the ride begins and ends exactly at the start coordinate.
func circlePath(start geo.Point, targetMeters float64) []geo.Point {
	if targetMeters <= 0 {
		targetMeters = 5000
	}
	radius := targetMeters / (2 * math.Pi)

	latScale := metersPerDegreeLat
	lonScale := metersPerDegreeLat * math.Cos(start.Latitude*math.Pi/180)
	if lonScale < 1 {
		lonScale = 1
	}

	centerLat := start.Latitude + radius/latScale

	path := make([]geo.Point, 0, circleSamples+1)
	for i := 0; i < circleSamples; i++ {
		// Angle -pi/2 points from the center back at the start.
		angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(circleSamples)
		path = append(path, geo.Point{
			Latitude:  centerLat + radius*math.Sin(angle)/latScale,
			Longitude: start.Longitude + radius*math.Cos(angle)/lonScale,
		})
	}
	path = append(path, start)
	path[0] = start
	return path
}

// swayPath connects consecutive waypoints with interpolated segments and
// superimposes a lateral sine sway. The amplitude is derived from how
// much longer than the straight line the target distance is.
func swayPath(waypoints []route.Waypoint, targetMeters float64) []geo.Point {
	var straight float64
	for i := 1; i < len(waypoints); i++ {
		straight += geo.Distance(waypoints[i-1].Point, waypoints[i].Point)
	}

	ratio := 1.0
	if straight > 0 && targetMeters > straight {
		ratio = targetMeters / straight
	}

	var path []geo.Point
	for i := 1; i < len(waypoints); i++ {
		a, b := waypoints[i-1].Point, waypoints[i].Point
		segment := geo.Distance(a, b)
		amplitude := swayAmplitude(segment, ratio)

		// Unit normal to the segment in degree space.
		dLat := b.Latitude - a.Latitude
		dLon := b.Longitude - a.Longitude
		norm := math.Hypot(dLat, dLon)
		var nLat, nLon float64
		if norm > 0 {
			nLat, nLon = -dLon/norm, dLat/norm
		}

		for s := 0; s < segmentSamples; s++ {
			t := float64(s) / float64(segmentSamples)
			p := geo.Interpolate(a, b, t)
			sway := amplitude * math.Sin(2*math.Pi*segmentWaves*t) / metersPerDegreeLat
			path = append(path, geo.Point{
				Latitude:  p.Latitude + nLat*sway,
				Longitude: p.Longitude + nLon*sway,
			})
		}
	}
	path = append(path, waypoints[len(waypoints)-1].Point)
	return path
}

// swayAmplitude sizes the sine sway so the arc length of the swayed
// segment approximates ratio times its straight length.
func swayAmplitude(segmentMeters, ratio float64) float64 {
	if ratio <= 1 {
		return 0
	}
	return segmentMeters * math.Sqrt(2*(ratio*ratio-1)) / (2 * math.Pi * segmentWaves)
}

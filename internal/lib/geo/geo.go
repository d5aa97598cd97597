package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/twpayne/go-polyline"
)

// earthRadius is the mean Earth radius in meters used by the Haversine formula
const earthRadius = 6371000

// codec6 decodes/encodes polylines with 6 digits of precision (Valhalla shape
// format). Precision 5 (GraphHopper, OSRM, Google) uses the library default.
var codec6 = polyline.Codec{Dim: 2, Scale: 1e6}

// codec5 mirrors the library's default 5-digit codec, which is unexported.
var codec5 = polyline.Codec{Dim: 2, Scale: 1e5}

// Distance calculates the great-circle distance between two points in meters
// using the Haversine formula.
func Distance(p1, p2 Point) float64 {
	if p1.Latitude == p2.Latitude && p1.Longitude == p2.Longitude {
		return 0
	}

	lat1 := p1.Latitude * math.Pi / 180
	lat2 := p2.Latitude * math.Pi / 180
	dlat := (p2.Latitude - p1.Latitude) * math.Pi / 180
	dlon := (p2.Longitude - p1.Longitude) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// PathLength sums the segment distances of an ordered point sequence in meters.
func PathLength(points []Point) float64 {
	total := 0.0
	for i := 0; i < len(points)-1; i++ {
		total += Distance(points[i], points[i+1])
	}
	return total
}

// DecodePolyline decodes a Google-algorithm encoded polyline at the given
// precision (5 or 6 digits). A malformed encoded string is a fatal decode error.
func DecodePolyline(encoded string, precision int) ([]Point, error) {
	if encoded == "" {
		return nil, errors.New("encoded polyline string is empty")
	}

	coords, rest, err := codecFor(precision).DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to decode polyline: %w", err)
	}
	if len(rest) != 0 {
		return nil, errors.New("failed to decode polyline: trailing bytes after coordinate sequence")
	}

	points := make([]Point, len(coords))
	for i, coord := range coords {
		points[i] = Point{Latitude: coord[0], Longitude: coord[1]}
		if !points[i].Valid() {
			return nil, errors.New("decoded polyline contains invalid coordinates")
		}
	}

	return points, nil
}

// EncodePolyline encodes a point sequence with the Google polyline algorithm
// at the given precision.
func EncodePolyline(points []Point, precision int) string {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p.Latitude, p.Longitude}
	}
	return string(codecFor(precision).EncodeCoords(nil, coords))
}

// Interpolate returns the point a fraction t of the way from start to end.
// Linear interpolation is adequate for the sub-10km segments routes are
// built from.
func Interpolate(start, end Point, t float64) Point {
	return Point{
		Latitude:  start.Latitude + t*(end.Latitude-start.Latitude),
		Longitude: start.Longitude + t*(end.Longitude-start.Longitude),
	}
}

func codecFor(precision int) polyline.Codec {
	if precision == 6 {
		return codec6
	}
	return codec5
}

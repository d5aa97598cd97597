package services

import (
	"io"

	kml "github.com/twpayne/go-kml/v2"

	"github.com/pedalpath/server/internal/lib/route"
)

const kmlContentType = "application/vnd.google-earth.kml+xml"

// writeKML renders a stored route as a KML document with the dense path
// as a LineString plus start and finish placemarks, suitable for import
// into mapping tools.
func writeKML(w io.Writer, result *route.Result) error {
	name := "Cycling Route"
	description := ""
	if result.Planner != nil {
		if result.Planner.RouteName != "" {
			name = result.Planner.RouteName
		}
		description = result.Planner.Description
	}

	coordinates := make([]kml.Coordinate, len(result.Path))
	for i, p := range result.Path {
		coordinates[i] = kml.Coordinate{Lon: p.Longitude, Lat: p.Latitude}
	}

	children := []kml.Element{
		kml.Name(name),
		kml.Description(description),
		kml.Placemark(
			kml.Name("Route"),
			kml.LineString(
				kml.Tessellate(true),
				kml.Coordinates(coordinates...),
			),
		),
	}

	if len(result.Path) > 0 {
		first := result.Path[0]
		last := result.Path[len(result.Path)-1]
		children = append(children,
			kml.Placemark(
				kml.Name("Start"),
				kml.Point(kml.Coordinates(kml.Coordinate{Lon: first.Longitude, Lat: first.Latitude})),
			),
			kml.Placemark(
				kml.Name("Finish"),
				kml.Point(kml.Coordinates(kml.Coordinate{Lon: last.Longitude, Lat: last.Latitude})),
			),
		)
	}

	return kml.KML(kml.Document(children...)).WriteIndent(w, "", "  ")
}

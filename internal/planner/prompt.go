package planner

import (
	"fmt"
	"strings"

	"github.com/pedalpath/server/internal/lib/route"
	"github.com/pedalpath/server/internal/lib/units"
)

// unitLabels returns the singular and plural spelled-out unit names used
// in prompt text.
func unitLabels(system units.System) (string, string) {
	if system == units.Imperial {
		return "mile", "miles"
	}
	return "kilometer", "kilometers"
}

// flavorDescription renders the route flavor as prompt guidance. A custom
// flavor substitutes the rider's own description; otherwise a custom
// description is appended to the flavor text.
func flavorDescription(prefs route.Preferences) string {
	var desc string
	switch prefs.Flavor {
	case route.FlavorNature:
		desc = "focused on off-road trails with unpaved nature paths and green spaces"
	case route.FlavorFitness:
		desc = "focused on training routes with challenging elevation for fitness enthusiasts"
	case route.FlavorUrban:
		desc = "focused on exploring city streets, urban attractions, new neighborhoods, local culture, and hidden gems"
	case route.FlavorCustom:
		if custom := strings.TrimSpace(prefs.CustomDescription); custom != "" {
			return custom
		}
		return "customized according to your target distance preferences"
	default:
		desc = "focused on scenic routes with paved roads and beautiful views"
	}

	if custom := strings.TrimSpace(prefs.CustomDescription); custom != "" {
		desc += ". Additionally, " + custom
	}
	return desc
}

// toggleDescription summarizes the boolean preference toggles for the prompt.
func toggleDescription(prefs route.Preferences) string {
	var parts []string
	if prefs.UseBikeLanes {
		parts = append(parts, "prioritizing bike lanes")
	}
	if prefs.AvoidTraffic {
		parts = append(parts, "avoiding high traffic areas")
	}
	if prefs.AvoidHills {
		parts = append(parts, "avoiding hills")
	}
	if prefs.ElevationFocus {
		parts = append(parts, "with elevation focus")
	}

	if len(parts) == 0 {
		return "with no specific preferences for bike lanes, traffic, elevation, or hills"
	}
	return "focused on " + strings.Join(parts, " and ")
}

// buildPrompts constructs the system and user messages sent to the model.
// The system message pins the response schema and the exact start/end
// coordinates; the user message carries the rider's preferences and the
// distance-category guidance.
func buildPrompts(prefs route.Preferences) (string, string) {
	singular, plural := unitLabels(prefs.Units)
	category := ClassifyDistance(prefs.TargetDistance, prefs.Units)
	end := prefs.Destination()

	startLocation := prefs.StartName
	if startLocation == "" {
		startLocation = fmt.Sprintf("coordinates %v, %v", prefs.Start.Latitude, prefs.Start.Longitude)
	}
	endLocation := prefs.EndName
	if endLocation == "" {
		if prefs.IsLoop() {
			endLocation = startLocation
		} else {
			endLocation = fmt.Sprintf("coordinates %v, %v", end.Latitude, end.Longitude)
		}
	}

	systemPrompt := fmt.Sprintf(`You are a cycling route planning expert. Generate a bicycle route with specific waypoints that can be used to create turn-by-turn directions.

IMPORTANT: You must respond with a JSON object containing:
1. "waypoints": An array of coordinate objects with "lat" and "lon" properties
2. "difficulty": A string rating ("Easy", "Moderate", "Challenging", "Expert")
3. "description": A breakdown of the route highlights to look out for
4. "route_name": A creative, descriptive name for this route

CRITICAL REQUIREMENTS FOR %v %s ROUTES:
- The first waypoint MUST be the exact starting location provided: %v, %v
- The last waypoint MUST be the exact ending location provided: %v, %v
- Use between %d and %d intermediate waypoints, spaced roughly %s, so the route reaches the target distance of %v %s.
- Each waypoint should be a notable landmark, destination, or area worth visiting on a bike tour.
- The primary goal is that the rider reaches their target distance of %v %s; minimize the error between the actual route distance and the target.
- For loop routes (same start and end), create waypoints that form a circuit back to the starting point.`,
		prefs.TargetDistance, strings.ToUpper(singular),
		prefs.Start.Latitude, prefs.Start.Longitude,
		end.Latitude, end.Longitude,
		category.MinWaypoints, category.MaxWaypoints, category.Spacing,
		prefs.TargetDistance, singular,
		prefs.TargetDistance, singular)

	userPrompt := fmt.Sprintf(`Generate me a bike route %s. I want to get from %s to %s. The total distance of the route should be as close to %v %s as possible. I want my bike ride to be %s.

WAYPOINT SPECIFICATIONS:
- Start at: %v, %v (EXACT coordinates required)
- End at: %v, %v (EXACT coordinates required)
- This is a %s route: use %d-%d intermediate waypoints spaced %s.`,
		toggleDescription(prefs), startLocation, endLocation,
		prefs.TargetDistance, plural, flavorDescription(prefs),
		prefs.Start.Latitude, prefs.Start.Longitude,
		end.Latitude, end.Longitude,
		category.Name, category.MinWaypoints, category.MaxWaypoints, category.Spacing)

	return systemPrompt, userPrompt
}

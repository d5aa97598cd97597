// Package route defines the canonical route schema shared by every
// routing backend adapter, along with the maneuver-type mapping tables
// and route heuristics that normalize backend output.
package route

import (
	"github.com/pedalpath/server/internal/lib/geo"
	"github.com/pedalpath/server/internal/lib/units"
)

// Flavor is the rider-selected character of the route.
type Flavor string

const (
	FlavorScenic  Flavor = "scenic"  // paved roads, views
	FlavorNature  Flavor = "nature"  // unpaved trails, green spaces
	FlavorFitness Flavor = "fitness" // training rides, climbing
	FlavorUrban   Flavor = "urban"   // city streets, neighborhoods
	FlavorCustom  Flavor = "custom"  // free-text description drives the plan
)

// Difficulty is the final rating attached to a generated route.
type Difficulty string

const (
	DifficultyEasy        Difficulty = "Easy"
	DifficultyModerate    Difficulty = "Moderate"
	DifficultyChallenging Difficulty = "Challenging"
	DifficultyExpert      Difficulty = "Expert"
)

// WaypointRole tags a waypoint's position within the planned list.
type WaypointRole string

const (
	RoleStart WaypointRole = "start"
	RoleVia   WaypointRole = "via"
	RoleEnd   WaypointRole = "end"
)

// Waypoint is a coordinate the route must pass through, as opposed to the
// dense path the rendered route actually follows.
type Waypoint struct {
	Point geo.Point    `json:"point"`
	Role  WaypointRole `json:"role"`
}

// Preferences carries the rider's request. It is created per request and
// read-only thereafter.
type Preferences struct {
	Start             geo.Point    // required
	End               *geo.Point   // nil implies a loop back to Start
	TargetDistance    float64      // in the rider's unit system
	Units             units.System // metric or imperial
	Flavor            Flavor
	UseBikeLanes      bool
	AvoidTraffic      bool
	AvoidHills        bool
	ElevationFocus    bool
	CustomDescription string
	StartName         string // display only, used in instruction text
	EndName           string // display only
}

// IsLoop reports whether the route returns to its starting point.
func (p Preferences) IsLoop() bool {
	return p.End == nil
}

// Destination returns the route's end coordinate, which for loops is the start.
func (p Preferences) Destination() geo.Point {
	if p.End != nil {
		return *p.End
	}
	return p.Start
}

// Options is the Preferences-derived subset shared with every provider
// adapter.
type Options struct {
	Units                units.System
	StartName            string
	EndName              string
	TargetDistanceMeters float64
}

// OptionsFrom derives the adapter options from the rider's preferences.
func OptionsFrom(prefs Preferences) Options {
	return Options{
		Units:                prefs.Units,
		StartName:            prefs.StartName,
		EndName:              prefs.EndName,
		TargetDistanceMeters: units.ToMeters(prefs.TargetDistance, prefs.Units),
	}
}

// Instruction is one canonical turn-by-turn step. The first instruction of
// a route is always TypeStart and the last is always TypeArrive.
type Instruction struct {
	Type            InstructionType `json:"type"`
	Text            string          `json:"text"`
	DistanceMeters  float64         `json:"distance_meters"`
	DurationSeconds float64         `json:"duration_seconds"`
	StreetName      string          `json:"street_name,omitempty"`
}

// PlannerMetadata is display-only information the waypoint planner passed
// through from the language model. It never affects routing math.
type PlannerMetadata struct {
	RouteName     string `json:"route_name,omitempty"`
	Description   string `json:"description,omitempty"`
	Difficulty    string `json:"suggested_difficulty,omitempty"`
	WaypointCount int    `json:"waypoint_count,omitempty"`
}

// Result is the canonical normalized route produced by whichever adapter
// succeeds. It is never mutated after normalization, only enriched with
// elevation and difficulty.
type Result struct {
	Path            []geo.Point      `json:"path"`
	DistanceMeters  float64          `json:"distance_meters"`
	DurationSeconds float64          `json:"duration_seconds"`
	ElevationGain   *float64         `json:"elevation_gain_meters"` // nil when unavailable
	Instructions    []Instruction    `json:"instructions"`
	Source          string           `json:"source"` // provenance tag
	Difficulty      Difficulty       `json:"difficulty,omitempty"`
	Planner         *PlannerMetadata `json:"planner_metadata,omitempty"`
}

// StartInstruction builds the leading instruction for a route, naming the
// starting point when the caller supplied one.
func StartInstruction(opts Options) Instruction {
	text := "Begin your cycling route"
	if opts.StartName != "" {
		text = "Start from " + opts.StartName
	}
	return Instruction{Type: TypeStart, Text: text}
}

// ArriveInstruction builds the closing instruction for a route, naming the
// destination when the caller supplied one.
func ArriveInstruction(opts Options) Instruction {
	text := "Arrive at your destination"
	if opts.EndName != "" {
		text = "Arrive at " + opts.EndName
	}
	return Instruction{Type: TypeArrive, Text: text}
}

// DirectWaypoints builds the trivial waypoint list used when planning is
// disabled or has failed: start plus destination (start again for loops).
func DirectWaypoints(prefs Preferences) []Waypoint {
	return []Waypoint{
		{Point: prefs.Start, Role: RoleStart},
		{Point: prefs.Destination(), Role: RoleEnd},
	}
}

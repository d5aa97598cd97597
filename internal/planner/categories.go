package planner

import (
	"github.com/pedalpath/server/internal/lib/units"
)

// Category describes the waypoint guidance for one distance band. The
// counts and spacing are prompt guidance only; the model is free to
// deviate and the parser enforces structure afterwards.
type Category struct {
	Name         string
	MinWaypoints int
	MaxWaypoints int
	Spacing      string
}

type band struct {
	min, max float64
	category Category
}

// Bands are half-open [min, max) so every non-negative distance maps to
// exactly one category; the last band is unbounded.
var metricBands = []band{
	{0, 5, Category{"short", 4, 5, "0.5-1 kilometers apart"}},
	{5, 13, Category{"medium", 5, 9, "1-2 kilometers apart"}},
	{13, 24, Category{"long", 7, 10, "2-3 kilometers apart"}},
	{24, -1, Category{"extra-long", 9, 14, "3-5 kilometers apart"}},
}

var imperialBands = []band{
	{0, 3, Category{"short", 4, 5, "0.3-0.6 miles apart"}},
	{3, 8, Category{"medium", 5, 9, "0.6-1.2 miles apart"}},
	{8, 15, Category{"long", 7, 10, "1.2-1.9 miles apart"}},
	{15, -1, Category{"extra-long", 9, 14, "1.9-3.1 miles apart"}},
}

// ClassifyDistance maps a target distance (in the rider's unit system)
// to its waypoint guidance category.
func ClassifyDistance(target float64, system units.System) Category {
	bands := metricBands
	if system == units.Imperial {
		bands = imperialBands
	}

	for _, b := range bands {
		if target >= b.min && (b.max < 0 || target < b.max) {
			return b.category
		}
	}
	return bands[len(bands)-1].category
}

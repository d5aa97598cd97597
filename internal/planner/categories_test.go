package planner

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pedalpath/server/internal/lib/units"
)

func TestClassifyDistance(t *testing.T) {
	tests := []struct {
		target float64
		system units.System
		want   string
	}{
		{0, units.Metric, "short"},
		{4.9, units.Metric, "short"},
		{5, units.Metric, "medium"},
		{12.9, units.Metric, "medium"},
		{13, units.Metric, "long"},
		{23.9, units.Metric, "long"},
		{24, units.Metric, "extra-long"},
		{500, units.Metric, "extra-long"},
		{0, units.Imperial, "short"},
		{2.9, units.Imperial, "short"},
		{3, units.Imperial, "medium"},
		{7.9, units.Imperial, "medium"},
		{8, units.Imperial, "long"},
		{14.9, units.Imperial, "long"},
		{15, units.Imperial, "extra-long"},
		{100, units.Imperial, "extra-long"},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%s_%v", tc.system, tc.target), func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyDistance(tc.target, tc.system).Name)
		})
	}
}

// Every non-negative distance must fall into exactly one band, and the
// bands must tile the number line without gaps or overlap.
func TestClassifyDistance_BandsAreTotal(t *testing.T) {
	for _, system := range []units.System{units.Metric, units.Imperial} {
		bands := metricBands
		if system == units.Imperial {
			bands = imperialBands
		}

		assert.Equal(t, 0.0, bands[0].min, "first band must start at zero")
		for i := 1; i < len(bands); i++ {
			assert.Equal(t, bands[i-1].max, bands[i].min,
				"%s band %d must start where band %d ends", system, i, i-1)
		}
		assert.Negative(t, bands[len(bands)-1].max, "last band must be unbounded")

		// Waypoint guidance should never shrink as distance grows
		for i := 1; i < len(bands); i++ {
			assert.GreaterOrEqual(t, bands[i].category.MinWaypoints, bands[i-1].category.MinWaypoints)
			assert.GreaterOrEqual(t, bands[i].category.MaxWaypoints, bands[i-1].category.MaxWaypoints)
		}
	}
}

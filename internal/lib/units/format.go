// Package units converts canonical metric quantities into display strings.
// Every provider adapter renders through these helpers so output is
// comparable regardless of which backend produced the route.
package units

import (
	"fmt"
	"math"
)

// System identifies the unit system requested by the rider.
type System string

const (
	Metric   System = "metric"
	Imperial System = "imperial"
)

// Valid reports whether s is a recognized unit system.
func (s System) Valid() bool {
	return s == Metric || s == Imperial
}

const (
	feetPerMeter  = 3.28084
	metersPerMile = 1609.34
)

// ToMeters converts a distance expressed in the system's headline unit
// (kilometers or miles) to meters.
func ToMeters(distance float64, system System) float64 {
	if system == Imperial {
		return distance * metersPerMile
	}
	return distance * 1000
}

// FormatDistance renders meters for display. Imperial shows sub-160.9m
// distances as rounded feet and everything else as miles to one decimal;
// metric shows sub-1km as rounded meters, else kilometers to one decimal.
func FormatDistance(meters float64, system System) string {
	if system == Imperial {
		if meters < 160.9 {
			return fmt.Sprintf("%d ft", int(math.Round(meters*feetPerMeter)))
		}
		return fmt.Sprintf("%.1f mi", meters/metersPerMile)
	}

	if meters < 1000 {
		return fmt.Sprintf("%d m", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

// FormatDuration renders seconds for display: "N sec" under a minute,
// "M min S sec" under an hour, "H hr M min" beyond. Rounding happens
// before unit selection so 59.7 s rolls over to "1 min", never "60 sec".
func FormatDuration(seconds float64) string {
	total := int(math.Round(seconds))

	if total < 60 {
		return fmt.Sprintf("%d sec", total)
	}

	if total < 3600 {
		minutes := total / 60
		remaining := total % 60
		if remaining == 0 {
			return fmt.Sprintf("%d min", minutes)
		}
		return fmt.Sprintf("%d min %d sec", minutes, remaining)
	}

	hours := total / 3600
	minutes := (total % 3600) / 60
	if minutes == 0 {
		return fmt.Sprintf("%d hr", hours)
	}
	return fmt.Sprintf("%d hr %d min", hours, minutes)
}

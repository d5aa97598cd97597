package route

// RateDifficulty scores a generated route from its distance, climbing per
// kilometer and the rider's preferences, then maps the score to a rating.
// Distance contributes up to 30 points, elevation up to 40, flavor up to 20,
// and the mitigation toggles shift the balance.
func RateDifficulty(distanceMeters float64, elevationGain *float64, prefs Preferences) Difficulty {
	score := 0
	distanceKm := distanceMeters / 1000

	switch {
	case distanceKm < 5:
		score += 5
	case distanceKm < 10:
		score += 10
	case distanceKm < 20:
		score += 20
	default:
		score += 30
	}

	// Unknown elevation counts as flat rather than failing the rating.
	elevationPerKm := 0.0
	if elevationGain != nil && distanceKm > 0 {
		elevationPerKm = *elevationGain / distanceKm
	}
	switch {
	case elevationPerKm < 10:
		score += 5
	case elevationPerKm < 20:
		score += 15
	case elevationPerKm < 40:
		score += 25
	default:
		score += 40
	}

	switch prefs.Flavor {
	case FlavorFitness:
		score += 20
	case FlavorUrban:
		score += 15
	case FlavorNature:
		score += 10
	default:
		score += 5
	}

	if prefs.AvoidHills {
		score -= 5
	}
	if prefs.UseBikeLanes {
		score -= 2
	}
	if prefs.AvoidTraffic {
		score -= 2
	}
	if prefs.ElevationFocus {
		score += 10
	}

	switch {
	case score < 20:
		return DifficultyEasy
	case score < 40:
		return DifficultyModerate
	case score < 60:
		return DifficultyChallenging
	default:
		return DifficultyExpert
	}
}

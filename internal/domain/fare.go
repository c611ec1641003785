package domain

import "math"

const (
	// EarthRadiusKm is the mean Earth radius used for Haversine distances.
	EarthRadiusKm = 6371.0

	// DefaultBaseFare and DefaultPerKmRate price a ride in rupees.
	DefaultBaseFare  = 25.0
	DefaultPerKmRate = 12.0

	// averageSpeedKmh drives the duration estimate shown to students.
	averageSpeedKmh    = 25.0
	minimumDurationMin = 5
)

// CalculateDistance returns the great-circle distance in km between two points.
// Kept in the same 2*R*asin(min(1, sqrt(h))) form as the nearby-captain SQL.
func CalculateDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// CalculateFare prices a distance with the default campus tariff.
func CalculateFare(distanceKm float64) float64 {
	return CalculateFareWith(distanceKm, DefaultBaseFare, DefaultPerKmRate)
}

// CalculateFareWith prices a distance as base + distance*perKmRate, rounded to paise.
func CalculateFareWith(distanceKm, baseFare, perKmRate float64) float64 {
	return Round2(baseFare + distanceKm*perKmRate)
}

// EstimateDuration returns the expected ride time in whole minutes.
func EstimateDuration(distanceKm float64) int {
	minutes := int(math.Ceil(distanceKm / averageSpeedKmh * 60))
	if minutes < minimumDurationMin {
		return minimumDurationMin
	}
	return minutes
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

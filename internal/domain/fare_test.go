package domain

import (
	"math"
	"testing"
)

// ──────────────────────────────────────────────
// 1. DISTANCE
// ──────────────────────────────────────────────

func TestCalculateDistance_SamePoint_IsZero(t *testing.T) {
	t.Parallel()

	if d := CalculateDistance(13.6288, 79.4192, 13.6288, 79.4192); d != 0 {
		t.Errorf("expected 0 km, got %v", d)
	}
}

func TestCalculateDistance_IsSymmetric(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
	}{
		{"campus to station", 13.35, 79.40, 13.63, 79.42},
		{"across the city", 12.9716, 77.5946, 12.9352, 77.6245},
		{"across the antimeridian", 10, 179.9, -10, -179.9},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			there := CalculateDistance(tc.lat1, tc.lng1, tc.lat2, tc.lng2)
			back := CalculateDistance(tc.lat2, tc.lng2, tc.lat1, tc.lng1)
			if math.Abs(there-back) > 1e-9 {
				t.Errorf("expected symmetric distance, got %v and %v", there, back)
			}
		})
	}
}

func TestCalculateDistance_KnownRoute(t *testing.T) {
	t.Parallel()

	d := CalculateDistance(12.9716, 77.5946, 12.9352, 77.6245)
	if math.Abs(d-5.1847) > 0.001 {
		t.Errorf("expected ~5.1847 km, got %v", d)
	}
}

func TestCalculateDistance_Antipodes_DoesNotOverflow(t *testing.T) {
	t.Parallel()

	d := CalculateDistance(0, 0, 0, 180)
	if math.IsNaN(d) {
		t.Fatal("expected a finite distance, got NaN")
	}
	if math.Abs(d-math.Pi*EarthRadiusKm) > 1e-6 {
		t.Errorf("expected half circumference, got %v", d)
	}
}

// ──────────────────────────────────────────────
// 2. FARE AND DURATION
// ──────────────────────────────────────────────

func TestCalculateFare(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		distance float64
		want     float64
	}{
		{0, 25},
		{1, 37},
		{8.5, 127},
		{31.21, 399.52},
		{0.005, 25.06},
	}

	for _, tc := range testCases {
		if got := CalculateFare(tc.distance); got != tc.want {
			t.Errorf("CalculateFare(%v): expected %v, got %v", tc.distance, tc.want, got)
		}
	}
}

func TestCalculateFareWith_CustomTariff(t *testing.T) {
	t.Parallel()

	if got := CalculateFareWith(10, 30, 15); got != 180 {
		t.Errorf("expected 180, got %v", got)
	}
}

func TestFare_UsesRoundedDistance(t *testing.T) {
	t.Parallel()

	distance := Round2(CalculateDistance(13.35, 79.40, 13.63, 79.42))
	if distance != 31.21 {
		t.Fatalf("expected 31.21 km, got %v", distance)
	}
	if fare := CalculateFare(distance); fare != 399.52 {
		t.Errorf("expected fare 399.52, got %v", fare)
	}
	if minutes := EstimateDuration(distance); minutes != 75 {
		t.Errorf("expected 75 minutes, got %d", minutes)
	}
}

func TestEstimateDuration_HasFloor(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		distance float64
		want     int
	}{
		{0, 5},
		{1, 5},
		{2.5, 6},
		{10, 24},
	}

	for _, tc := range testCases {
		if got := EstimateDuration(tc.distance); got != tc.want {
			t.Errorf("EstimateDuration(%v): expected %d, got %d", tc.distance, tc.want, got)
		}
	}
}

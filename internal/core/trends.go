package core

import (
	"math"
	"math/rand"
	"time"
)

const (
	trendWeeks     = 12
	trendBasePrice = 300.0
)

// PriceTrends builds weekly synthetic price points for a route starting at from.
// Peak months (July, August, December) carry a 40% markup and every point varies by ±20%.
// The series is deterministic per route and start date.
func PriceTrends(origin, destination string, from time.Time) []TrendPoint {
	rng := rand.New(rand.NewSource(HashSeed(origin + destination + from.Format(isoDate))))

	points := make([]TrendPoint, 0, trendWeeks)
	for i := 0; i < trendWeeks; i++ {
		date := from.AddDate(0, 0, i*7)
		base := trendBasePrice
		switch date.Month() {
		case time.July, time.August, time.December:
			base *= 1.4
		}
		factor := 0.8 + rng.Float64()*0.4
		points = append(points, TrendPoint{
			Date:  date.Format(isoDate),
			Price: math.Round(base * factor),
		})
	}
	return points
}

// CheapestTrend returns the lowest priced point; the earliest wins ties
func CheapestTrend(points []TrendPoint) (TrendPoint, bool) {
	if len(points) == 0 {
		return TrendPoint{}, false
	}
	best := points[0]
	for _, p := range points[1:] {
		if p.Price < best.Price {
			best = p
		}
	}
	return best, true
}

// HashSeed derives a stable rng seed from s
func HashSeed(s string) int64 {
	var h int64
	for _, c := range s {
		h = h*31 + int64(c)
	}
	if h < 0 {
		h = -h
	}
	return h
}

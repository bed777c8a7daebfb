package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceTrends_WeeklyAndBounded(t *testing.T) {
	from := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	points := PriceTrends("CDG", "JFK", from)
	require.Len(t, points, 12)

	for i, p := range points {
		assert.Equal(t, from.AddDate(0, 0, 7*i).Format("2006-01-02"), p.Date)
		date, _ := time.Parse("2006-01-02", p.Date)
		base := 300.0
		if m := date.Month(); m == time.July || m == time.August || m == time.December {
			base *= 1.4
		}
		assert.GreaterOrEqual(t, p.Price, base*0.8-1)
		assert.LessOrEqual(t, p.Price, base*1.2+1)
	}

	assert.Equal(t, points, PriceTrends("CDG", "JFK", from), "same route and date give the same series")
}

func TestPriceTrends_PeakMonthsMarkup(t *testing.T) {
	points := PriceTrends("CDG", "BKK", time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC))
	for _, p := range points[:4] {
		assert.GreaterOrEqual(t, p.Price, 300*1.4*0.8-1)
	}
}

func TestCheapestTrend(t *testing.T) {
	_, ok := CheapestTrend(nil)
	assert.False(t, ok)

	best, ok := CheapestTrend([]TrendPoint{{"2025-01-01", 300}, {"2025-01-08", 250}, {"2025-01-15", 250}})
	require.True(t, ok)
	assert.Equal(t, "2025-01-08", best.Date)
}

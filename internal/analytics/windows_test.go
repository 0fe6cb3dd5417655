package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-backend/internal/analytics/types"
)

func TestPeriodWindow(t *testing.T) {
	now := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)

	w := PeriodWindow(types.Period7d, now)
	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), w.End)

	w = PeriodWindow(types.Period12m, now)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), w.Start)

	assert.Equal(t, types.Period30d, types.ParsePeriod(""))
	assert.Equal(t, types.Period90d, types.ParsePeriod("90d"))
}

func TestBucketByDayFillsGaps(t *testing.T) {
	w := types.Window{
		Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC),
	}
	points := []types.OrderPoint{
		{CreatedAt: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC), Total: 100},
		{CreatedAt: time.Date(2026, 1, 3, 23, 59, 0, 0, time.UTC), Total: 50},
		{CreatedAt: time.Date(2026, 1, 3, 1, 0, 0, 0, time.UTC), Total: 25},
	}

	filled := bucketByDay(points, w, true)
	require.Len(t, filled, 3)
	assert.Equal(t, types.TimeSeriesPoint{Date: "2026-01-02"}, filled[1])
	assert.Equal(t, types.TimeSeriesPoint{Date: "2026-01-03", Orders: 2, Revenue: 75}, filled[2])

	sparse := bucketByDay(points, w, false)
	assert.Len(t, sparse, 2)
}

func TestGrowthAndFormatting(t *testing.T) {
	assert.Equal(t, 0.0, growthPercent(500, 0))
	assert.Equal(t, 33.3, growthPercent(4000, 3000))
	assert.Equal(t, -50.0, growthPercent(1000, 2000))

	assert.Equal(t, "12.34", FormatCents(1234))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "1500.00", FormatCents(150000))
}

func TestLatestDays(t *testing.T) {
	points := []types.TimeSeriesPoint{{Date: "a"}, {Date: "b"}, {Date: "c"}}
	got := latestDays(points, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].Date)
	assert.Equal(t, "b", got[1].Date)
}

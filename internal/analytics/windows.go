package analytics

import (
	"time"

	"github.com/angelmondragon/storefront-backend/internal/analytics/types"
)

// Report boundaries are computed in UTC.

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func startOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// PeriodWindow returns the whole days covered by p, ending with the day of now.
func PeriodWindow(p types.Period, now time.Time) types.Window {
	today := startOfDay(now)
	end := today.AddDate(0, 0, 1)
	var start time.Time
	switch p {
	case types.Period7d:
		start = today.AddDate(0, 0, -7)
	case types.Period90d:
		start = today.AddDate(0, 0, -90)
	case types.Period12m:
		start = today.AddDate(0, -12, 0)
	default:
		start = today.AddDate(0, 0, -30)
	}
	return types.Window{Start: start, End: end}
}

// bucketByDay sums points per UTC date. With fill set, days without orders are
// emitted as zero points so the series covers the whole window.
func bucketByDay(points []types.OrderPoint, w types.Window, fill bool) []types.TimeSeriesPoint {
	const layout = "2006-01-02"
	sums := map[string]*types.TimeSeriesPoint{}
	var order []string
	add := func(key string) *types.TimeSeriesPoint {
		if p, ok := sums[key]; ok {
			return p
		}
		p := &types.TimeSeriesPoint{Date: key}
		sums[key] = p
		order = append(order, key)
		return p
	}

	if fill {
		for d := startOfDay(w.Start); d.Before(w.End); d = d.AddDate(0, 0, 1) {
			add(d.Format(layout))
		}
	}
	for _, pt := range points {
		p := add(pt.CreatedAt.UTC().Format(layout))
		p.Orders++
		p.Revenue += pt.Total
	}

	out := make([]types.TimeSeriesPoint, 0, len(order))
	for _, key := range order {
		out = append(out, *sums[key])
	}
	return out
}

// bucketByHour returns only the hours that saw orders, ascending.
func bucketByHour(points []types.OrderPoint) []types.HourPoint {
	var hours [24]types.HourPoint
	var seen [24]bool
	for _, pt := range points {
		h := pt.CreatedAt.UTC().Hour()
		hours[h].Hour = h
		hours[h].Orders++
		hours[h].Revenue += pt.Total
		seen[h] = true
	}
	out := []types.HourPoint{}
	for h := range hours {
		if seen[h] {
			out = append(out, hours[h])
		}
	}
	return out
}

func bucketByWeekday(points []types.OrderPoint) []types.WeekdayPoint {
	var days [7]types.WeekdayPoint
	var seen [7]bool
	for _, pt := range points {
		d := int(pt.CreatedAt.UTC().Weekday())
		days[d].Weekday = d
		days[d].Orders++
		days[d].Revenue += pt.Total
		seen[d] = true
	}
	out := []types.WeekdayPoint{}
	for d := range days {
		if seen[d] {
			out = append(out, days[d])
		}
	}
	return out
}

package analytics

import (
	"sort"

	"funnelpulse/internal/events"
)

// TrendPoint holds one day's aggregate metrics. Revenue is in cents.
// ConversionRate is 0 for days without sessions.
type TrendPoint struct {
	Date           string  `json:"date"`
	Sessions       int64   `json:"sessions"`
	Conversions    int64   `json:"conversions"`
	Revenue        int64   `json:"revenue"`
	ConversionRate float64 `json:"conversion_rate"`
}

type dayAccumulator struct {
	sessions    map[string]struct{}
	conversions int64
	revenue     int64
}

// ComputeTrends buckets events by UTC calendar date and aggregates distinct
// sessions, purchase counts and purchase revenue per day. Output is sorted
// ascending by date with no duplicate buckets.
func ComputeTrends(evs []events.Event) []TrendPoint {
	days := make(map[string]*dayAccumulator)

	for _, e := range evs {
		date := e.Date()
		if date == "" {
			continue
		}
		day, ok := days[date]
		if !ok {
			day = &dayAccumulator{sessions: make(map[string]struct{})}
			days[date] = day
		}
		day.sessions[e.SessionID] = struct{}{}
		if e.EventName == events.EventPurchase {
			day.conversions++
			day.revenue += e.Value
		}
	}

	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	points := make([]TrendPoint, 0, len(dates))
	for _, date := range dates {
		day := days[date]
		sessions := int64(len(day.sessions))
		points = append(points, TrendPoint{
			Date:           date,
			Sessions:       sessions,
			Conversions:    day.conversions,
			Revenue:        day.revenue,
			ConversionRate: pct(day.conversions, sessions),
		})
	}
	return points
}

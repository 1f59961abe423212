package analytics

import (
	"fmt"
	"sort"
	"time"

	"funnelpulse/internal/events"
)

// HourlyMetric holds one hourly bucket of the overview breakdown.
//
// Revenue here is in decimal currency units (cents divided by 100) — the
// single place the engine crosses the minor-unit boundary. Callers must not
// divide again. Day is only set in multi-day mode.
type HourlyMetric struct {
	HourLabel     string           `json:"hour_label"`
	HourOfDay     int              `json:"hour_of_day"`
	Day           string           `json:"day,omitempty"`
	Sessions      int64            `json:"sessions"`
	Conversions   int64            `json:"conversions"`
	Revenue       float64          `json:"revenue"`
	ChannelCounts map[string]int64 `json:"channel_counts"`
}

// DateRange is the inclusive date span of the filtered event set.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// OverviewSummary holds the filtered top-line metrics plus the hourly
// breakdown. Revenue and AOV are in cents; only the hourly buckets carry
// decimal currency. DateRange is nil when no event matched the filters.
type OverviewSummary struct {
	Sessions       int64          `json:"sessions"`
	Purchases      int64          `json:"purchases"`
	ConversionRate float64        `json:"conversion_rate"`
	Revenue        int64          `json:"revenue"`
	AOV            float64        `json:"aov"`
	DateRange      *DateRange     `json:"date_range"`
	HourlyMetrics  []HourlyMetric `json:"hourly_metrics"`
	IsSingleDay    bool           `json:"is_single_day"`
}

type hourAccumulator struct {
	sessions      map[string]struct{}
	conversions   int64
	revenueCents  int64
	channelCounts map[string]int64
}

func newHourAccumulator() *hourAccumulator {
	return &hourAccumulator{
		sessions:      make(map[string]struct{}),
		channelCounts: make(map[string]int64),
	}
}

func (h *hourAccumulator) add(e events.Event) {
	h.sessions[e.SessionID] = struct{}{}
	if e.EventName == events.EventPurchase {
		h.conversions++
		h.revenueCents += e.Value
	}
	// The channel histogram counts all events, not just purchases.
	// Values outside the closed vocabulary stay out of the histogram.
	if events.KnownChannel(e.Channel) {
		h.channelCounts[e.Channel]++
	}
}

// ComputeOverview applies the filters, computes the top-line metrics over
// the filtered set, and buckets it by hour. A single-day range (including
// the degenerate empty set) produces 24 fixed hour-of-day buckets; a
// multi-day range produces sparse (date, hour) buckets sorted by their
// zero-padded composite key.
func ComputeOverview(evs []events.Event, filters events.Filters) OverviewSummary {
	filtered := filters.Apply(evs)

	sessions := make(map[string]struct{}, len(filtered))
	var purchases, revenue int64
	var dateRange *DateRange

	for _, e := range filtered {
		sessions[e.SessionID] = struct{}{}
		if e.EventName == events.EventPurchase {
			purchases++
			revenue += e.Value
		}
		date := e.Date()
		if date == "" {
			continue
		}
		if dateRange == nil {
			dateRange = &DateRange{Start: date, End: date}
			continue
		}
		if date < dateRange.Start {
			dateRange.Start = date
		}
		if date > dateRange.End {
			dateRange.End = date
		}
	}

	sessionCount := int64(len(sessions))
	singleDay := dateRange == nil || dateRange.Start == dateRange.End

	var hourly []HourlyMetric
	if singleDay {
		hourly = bucketBySingleDayHour(filtered)
	} else {
		hourly = bucketByDateHour(filtered)
	}

	return OverviewSummary{
		Sessions:       sessionCount,
		Purchases:      purchases,
		ConversionRate: pct(purchases, sessionCount),
		Revenue:        revenue,
		AOV:            ratio(revenue, purchases),
		DateRange:      dateRange,
		HourlyMetrics:  hourly,
		IsSingleDay:    singleDay,
	}
}

// bucketBySingleDayHour produces the fixed 24 hour-of-day buckets, all
// present even when empty.
func bucketBySingleDayHour(evs []events.Event) []HourlyMetric {
	accs := make([]*hourAccumulator, 24)
	for i := range accs {
		accs[i] = newHourAccumulator()
	}

	for _, e := range evs {
		hour, ok := hourOf(e.Timestamp)
		if !ok {
			continue
		}
		accs[hour].add(e)
	}

	metrics := make([]HourlyMetric, 24)
	for hour, acc := range accs {
		metrics[hour] = HourlyMetric{
			HourLabel:     fmt.Sprintf("%02d:00", hour),
			HourOfDay:     hour,
			Sessions:      int64(len(acc.sessions)),
			Conversions:   acc.conversions,
			Revenue:       float64(acc.revenueCents) / 100,
			ChannelCounts: acc.channelCounts,
		}
	}
	return metrics
}

// bucketByDateHour produces sparse (date, hour) buckets for multi-day
// ranges. The composite key zero-pads the hour so lexicographic key order
// equals chronological order.
func bucketByDateHour(evs []events.Event) []HourlyMetric {
	type dateHour struct {
		date string
		hour int
	}

	accs := make(map[string]*hourAccumulator)
	keys := make(map[string]dateHour)

	for _, e := range evs {
		hour, ok := hourOf(e.Timestamp)
		if !ok {
			continue
		}
		date := e.Date()
		key := fmt.Sprintf("%s %02d", date, hour)
		acc, exists := accs[key]
		if !exists {
			acc = newHourAccumulator()
			accs[key] = acc
			keys[key] = dateHour{date: date, hour: hour}
		}
		acc.add(e)
	}

	sorted := make([]string, 0, len(accs))
	for key := range accs {
		sorted = append(sorted, key)
	}
	sort.Strings(sorted)

	metrics := make([]HourlyMetric, 0, len(sorted))
	for _, key := range sorted {
		acc := accs[key]
		dh := keys[key]
		metrics = append(metrics, HourlyMetric{
			HourLabel:     formatDateHourLabel(dh.date, dh.hour),
			HourOfDay:     dh.hour,
			Day:           dh.date,
			Sessions:      int64(len(acc.sessions)),
			Conversions:   acc.conversions,
			Revenue:       float64(acc.revenueCents) / 100,
			ChannelCounts: acc.channelCounts,
		})
	}
	return metrics
}

// hourOf extracts the UTC hour of day from an RFC3339 timestamp.
func hourOf(timestamp string) (int, bool) {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return 0, false
	}
	return t.UTC().Hour(), true
}

// formatDateHourLabel renders an abbreviated date plus hour, e.g. "Mar 4 15:00".
func formatDateHourLabel(date string, hour int) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Sprintf("%s %02d:00", date, hour)
	}
	return fmt.Sprintf("%s %02d:00", t.Format("Jan 2"), hour)
}

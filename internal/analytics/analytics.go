// Package analytics derives analytical views from the in-memory event log.
//
// The package is organized into focused modules:
//   - funnel.go: ordered-step conversion funnel
//   - abtests.go: per-experiment A/B variant metrics and lift
//   - trends.go: daily time-series aggregation
//   - overview.go: filtered top-line metrics with hourly breakdown
//   - listing.go: paginated event browsing
//   - params.go: request parameter clamping
//
// Every function here is a pure transform: it takes an event slice (plus
// optional parameters), owns no state, and returns a fresh structure. All
// rate calculations are divide-by-zero guarded and yield 0, never NaN or
// Inf. Revenue is carried in minor currency units (cents) except where a
// type explicitly documents otherwise.
package analytics

// pct returns num as a percentage of denom, 0 when denom is 0.
func pct(num, denom int64) float64 {
	if denom == 0 {
		return 0
	}
	return float64(num) / float64(denom) * 100
}

// ratio returns num/denom as a float, 0 when denom is 0.
func ratio(num, denom int64) float64 {
	if denom == 0 {
		return 0
	}
	return float64(num) / float64(denom)
}

package events

// Filters represents the composable filtering options applied before
// aggregation. Zero-valued fields impose no constraint; supplied fields
// combine with AND semantics. Values outside the closed vocabularies are
// not an error, they just match nothing.
type Filters struct {
	StartDate string // inclusive, "2006-01-02"
	EndDate   string // inclusive, "2006-01-02"
	Device    string
	Channel   string
	SessionID string
}

// IsZero reports whether no filter is set.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// Match reports whether a single event satisfies every supplied filter.
// Date bounds compare lexicographically against the timestamp's date prefix,
// which is equivalent to chronological comparison for UTC RFC3339 strings.
func (f Filters) Match(e Event) bool {
	if f.SessionID != "" && e.SessionID != f.SessionID {
		return false
	}
	if f.Device != "" && e.Device != f.Device {
		return false
	}
	if f.Channel != "" && e.Channel != f.Channel {
		return false
	}
	if f.StartDate != "" || f.EndDate != "" {
		date := e.Date()
		if f.StartDate != "" && date < f.StartDate {
			return false
		}
		if f.EndDate != "" && date > f.EndDate {
			return false
		}
	}
	return true
}

// Apply returns the subsequence of evs satisfying the filters. The input
// slice is never mutated; an absence of matches yields an empty slice.
func (f Filters) Apply(evs []Event) []Event {
	if f.IsZero() {
		return evs
	}

	filtered := make([]Event, 0, len(evs))
	for _, e := range evs {
		if f.Match(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

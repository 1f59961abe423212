package analytics

import (
	"sort"

	"funnelpulse/internal/events"
)

// Pagination describes the page window actually served, after clamping.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// EventPage is one page of the event listing, newest first.
type EventPage struct {
	Data       []events.Event `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// ListEvents filters by session when requested, orders newest first and
// slices out the requested page. Pages beyond the data return an empty
// page with the pagination metadata intact.
func ListEvents(evs []events.Event, params ListParams) EventPage {
	matched := evs
	if params.SessionID != "" {
		matched = make([]events.Event, 0)
		for _, e := range evs {
			if e.SessionID == params.SessionID {
				matched = append(matched, e)
			}
		}
	} else {
		matched = append([]events.Event(nil), evs...)
	}

	// EventID breaks timestamp ties so page boundaries stay stable
	// across calls.
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Timestamp != matched[j].Timestamp {
			return matched[i].Timestamp > matched[j].Timestamp
		}
		return matched[i].EventID > matched[j].EventID
	})

	total := int64(len(matched))
	totalPages := int((total + int64(params.Limit) - 1) / int64(params.Limit))

	offset := (params.Page - 1) * params.Limit
	page := []events.Event{}
	if offset < len(matched) {
		end := offset + params.Limit
		if end > len(matched) {
			end = len(matched)
		}
		page = matched[offset:end]
	}

	return EventPage{
		Data: page,
		Pagination: Pagination{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}

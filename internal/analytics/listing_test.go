package analytics_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"funnelpulse/internal/analytics"
	"funnelpulse/internal/events"
	"funnelpulse/internal/testsupport"
)

func TestParseListParams(t *testing.T) {
	tests := []struct {
		name      string
		rawPage   string
		rawLimit  string
		wantPage  int
		wantLimit int
	}{
		{name: "defaults", rawPage: "", rawLimit: "", wantPage: 1, wantLimit: 50},
		{name: "explicit values", rawPage: "3", rawLimit: "25", wantPage: 3, wantLimit: 25},
		{name: "non-numeric page falls back", rawPage: "abc", rawLimit: "25", wantPage: 1, wantLimit: 25},
		{name: "zero page falls back", rawPage: "0", rawLimit: "25", wantPage: 1, wantLimit: 25},
		{name: "negative page falls back", rawPage: "-2", rawLimit: "25", wantPage: 1, wantLimit: 25},
		{name: "zero limit falls back", rawPage: "1", rawLimit: "0", wantPage: 1, wantLimit: 50},
		{name: "oversized limit clamps", rawPage: "1", rawLimit: "9999", wantPage: 1, wantLimit: 200},
		{name: "limit at the cap passes through", rawPage: "1", rawLimit: "200", wantPage: 1, wantLimit: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := analytics.ParseListParams("", tt.rawPage, tt.rawLimit)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

func TestListEventsNewestFirst(t *testing.T) {
	evs := []events.Event{
		testsupport.BuildEvent("s1", events.EventPageView, "2025-03-10T09:00:00Z"),
		testsupport.BuildEvent("s2", events.EventPageView, "2025-03-10T11:00:00Z"),
		testsupport.BuildEvent("s3", events.EventPageView, "2025-03-10T10:00:00Z"),
	}

	page := analytics.ListEvents(evs, analytics.ListParams{Page: 1, Limit: 50})

	require.Len(t, page.Data, 3)
	assert.Equal(t, "s2", page.Data[0].SessionID)
	assert.Equal(t, "s3", page.Data[1].SessionID)
	assert.Equal(t, "s1", page.Data[2].SessionID)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 1, page.Pagination.TotalPages)
}

func TestListEventsSessionFilter(t *testing.T) {
	evs := []events.Event{
		testsupport.BuildEvent("s1", events.EventPageView, "2025-03-10T09:00:00Z"),
		testsupport.BuildEvent("s2", events.EventPageView, "2025-03-10T10:00:00Z"),
		testsupport.BuildEvent("s1", events.EventAddToCart, "2025-03-10T09:05:00Z"),
	}

	page := analytics.ListEvents(evs, analytics.ListParams{SessionID: "s1", Page: 1, Limit: 50})

	require.Len(t, page.Data, 2)
	for _, e := range page.Data {
		assert.Equal(t, "s1", e.SessionID)
	}
	assert.Equal(t, int64(2), page.Pagination.Total)
}

func TestListEventsPagination(t *testing.T) {
	var evs []events.Event
	for i := 0; i < 25; i++ {
		evs = append(evs, testsupport.BuildEvent(
			fmt.Sprintf("s%02d", i),
			events.EventPageView,
			fmt.Sprintf("2025-03-10T10:%02d:00Z", i),
		))
	}

	first := analytics.ListEvents(evs, analytics.ListParams{Page: 1, Limit: 10})
	require.Len(t, first.Data, 10)
	assert.Equal(t, "s24", first.Data[0].SessionID)
	assert.Equal(t, 3, first.Pagination.TotalPages)

	third := analytics.ListEvents(evs, analytics.ListParams{Page: 3, Limit: 10})
	require.Len(t, third.Data, 5)
	assert.Equal(t, "s00", third.Data[4].SessionID)

	// Pages never overlap.
	seen := make(map[string]bool)
	for p := 1; p <= 3; p++ {
		page := analytics.ListEvents(evs, analytics.ListParams{Page: p, Limit: 10})
		for _, e := range page.Data {
			assert.False(t, seen[e.EventID], "event served twice: %s", e.EventID)
			seen[e.EventID] = true
		}
	}
	assert.Len(t, seen, 25)
}

func TestListEventsPageBeyondRange(t *testing.T) {
	evs := []events.Event{
		testsupport.BuildEvent("s1", events.EventPageView, "2025-03-10T09:00:00Z"),
	}

	page := analytics.ListEvents(evs, analytics.ListParams{Page: 7, Limit: 50})

	assert.Empty(t, page.Data)
	assert.Equal(t, 7, page.Pagination.Page)
	assert.Equal(t, int64(1), page.Pagination.Total)
	assert.Equal(t, 1, page.Pagination.TotalPages)
}

func TestListEventsEmptyInput(t *testing.T) {
	page := analytics.ListEvents(nil, analytics.ListParams{Page: 1, Limit: 50})

	assert.Empty(t, page.Data)
	assert.Zero(t, page.Pagination.Total)
	assert.Zero(t, page.Pagination.TotalPages)
}

func TestListEventsStableOrderOnTimestampTies(t *testing.T) {
	a := testsupport.BuildEvent("s1", events.EventPageView, "2025-03-10T09:00:00Z")
	a.EventID = "evt-a"
	b := testsupport.BuildEvent("s2", events.EventPageView, "2025-03-10T09:00:00Z")
	b.EventID = "evt-b"

	page := analytics.ListEvents([]events.Event{a, b}, analytics.ListParams{Page: 1, Limit: 50})

	require.Len(t, page.Data, 2)
	assert.Equal(t, "evt-b", page.Data[0].EventID)
	assert.Equal(t, "evt-a", page.Data[1].EventID)
}

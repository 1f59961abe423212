package http

import (
	"github.com/karloscodes/cartridge"

	"funnelpulse/internal/events"
)

// parseFilters reads the shared filter query parameters. Values are passed
// through as-is; the engine treats unknown devices or channels as
// non-matching rather than erroring.
func parseFilters(ctx *cartridge.Context) events.Filters {
	return events.Filters{
		StartDate: ctx.Query("start_date", ""),
		EndDate:   ctx.Query("end_date", ""),
		Device:    ctx.Query("device", ""),
		Channel:   ctx.Query("channel", ""),
	}
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"

	"funnelpulse/internal/analytics"
	"funnelpulse/internal/store"
)

// EventsIndexAction serves the paginated raw-event listing, newest first.
// Out-of-range paging parameters clamp to defaults instead of erroring.
func EventsIndexAction(st *store.Store) func(ctx *cartridge.Context) error {
	return func(ctx *cartridge.Context) error {
		params := analytics.ParseListParams(
			ctx.Query("session_id", ""),
			ctx.Query("page", ""),
			ctx.Query("limit", ""),
		)

		page := analytics.ListEvents(st.Snapshot(), params)

		return ctx.Status(fiber.StatusOK).JSON(page)
	}
}

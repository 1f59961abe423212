package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"

	"funnelpulse/internal/analytics"
	"funnelpulse/internal/store"
)

// FunnelIndexAction serves the four-step conversion funnel over the
// filtered event set.
func FunnelIndexAction(st *store.Store) func(ctx *cartridge.Context) error {
	return func(ctx *cartridge.Context) error {
		filters := parseFilters(ctx)
		filtered := filters.Apply(st.Snapshot())

		steps := analytics.ComputeFunnel(filtered)

		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"steps": steps,
		})
	}
}

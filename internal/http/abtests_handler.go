package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"

	"funnelpulse/internal/analytics"
	"funnelpulse/internal/store"
)

// ABTestsIndexAction serves the per-experiment variant comparison.
func ABTestsIndexAction(st *store.Store) func(ctx *cartridge.Context) error {
	return func(ctx *cartridge.Context) error {
		filters := parseFilters(ctx)
		filtered := filters.Apply(st.Snapshot())

		reports := analytics.ComputeABTests(filtered)

		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"experiments": reports,
		})
	}
}

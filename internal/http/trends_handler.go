package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"

	"funnelpulse/internal/analytics"
	"funnelpulse/internal/store"
)

// TrendsIndexAction serves the per-day trend series in ascending date order.
func TrendsIndexAction(st *store.Store) func(ctx *cartridge.Context) error {
	return func(ctx *cartridge.Context) error {
		filters := parseFilters(ctx)
		filtered := filters.Apply(st.Snapshot())

		points := analytics.ComputeTrends(filtered)

		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"trends": points,
		})
	}
}

package http

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"

	"funnelpulse/internal/analytics"
	"funnelpulse/internal/pkg/async"
	"funnelpulse/internal/store"
)

// DashboardResponse bundles every report section into one payload so the
// dashboard renders from a single request.
type DashboardResponse struct {
	Overview    analytics.OverviewSummary    `json:"overview"`
	Funnel      []analytics.FunnelStep       `json:"funnel"`
	Experiments []analytics.ExperimentReport `json:"experiments"`
	Trends      []analytics.TrendPoint       `json:"trends"`
}

// DashboardIndexAction computes all four report sections concurrently over
// one snapshot, so every section reflects the same point in time.
func DashboardIndexAction(st *store.Store) func(ctx *cartridge.Context) error {
	return func(ctx *cartridge.Context) error {
		filters := parseFilters(ctx)
		snapshot := st.Snapshot()
		filtered := filters.Apply(snapshot)

		tasks := []async.Task{
			{
				Name: "overview",
				Execute: func() (interface{}, error) {
					return analytics.ComputeOverview(snapshot, filters), nil
				},
			},
			{
				Name: "funnel",
				Execute: func() (interface{}, error) {
					return analytics.ComputeFunnel(filtered), nil
				},
			},
			{
				Name: "experiments",
				Execute: func() (interface{}, error) {
					return analytics.ComputeABTests(filtered), nil
				},
			},
			{
				Name: "trends",
				Execute: func() (interface{}, error) {
					return analytics.ComputeTrends(filtered), nil
				},
			},
		}

		pool := async.NewPool(len(tasks))
		results := pool.Execute(context.Background(), tasks)

		response := DashboardResponse{}
		for name, result := range results {
			if result.Err != nil {
				ctx.Logger.Error("Dashboard section failed",
					slog.String("section", name), slog.Any("error", result.Err))
				return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to compute dashboard",
				})
			}
			switch name {
			case "overview":
				response.Overview = result.Data.(analytics.OverviewSummary)
			case "funnel":
				response.Funnel = result.Data.([]analytics.FunnelStep)
			case "experiments":
				response.Experiments = result.Data.([]analytics.ExperimentReport)
			case "trends":
				response.Trends = result.Data.([]analytics.TrendPoint)
			}
		}

		return ctx.Status(fiber.StatusOK).JSON(response)
	}
}

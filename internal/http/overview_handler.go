package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"funnelpulse/internal/analytics"
	"funnelpulse/internal/events"
	"funnelpulse/internal/store"
)

var titleCaser = cases.Title(language.AmericanEnglish)

// OverviewIndexAction serves the filtered top-line metrics plus the hourly
// breakdown, along with a display-ready channel summary totaled across all
// buckets.
func OverviewIndexAction(st *store.Store) func(ctx *cartridge.Context) error {
	return func(ctx *cartridge.Context) error {
		filters := parseFilters(ctx)

		summary := analytics.ComputeOverview(st.Snapshot(), filters)

		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"overview":          summary,
			"channel_breakdown": channelBreakdown(summary),
		})
	}
}

type channelTotal struct {
	Channel string `json:"channel"`
	Label   string `json:"label"`
	Events  int64  `json:"events"`
}

// channelBreakdown totals the per-bucket channel histograms into one
// display-ready list, keeping the closed channel vocabulary's order.
func channelBreakdown(summary analytics.OverviewSummary) []channelTotal {
	totals := make(map[string]int64, len(events.Channels))
	for _, metric := range summary.HourlyMetrics {
		for channel, count := range metric.ChannelCounts {
			totals[channel] += count
		}
	}

	breakdown := make([]channelTotal, 0, len(events.Channels))
	for _, channel := range events.Channels {
		breakdown = append(breakdown, channelTotal{
			Channel: channel,
			Label:   titleCaser.String(channel),
			Events:  totals[channel],
		})
	}
	return breakdown
}

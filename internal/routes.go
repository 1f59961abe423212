package internal

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/karloscodes/cartridge"
	cartridgemiddleware "github.com/karloscodes/cartridge/middleware"

	"funnelpulse/internal/config"
	"funnelpulse/internal/http"
	"funnelpulse/internal/store"
)

// publicCORSConfig returns the standard CORS configuration for the read-only
// reporting API. Dashboards are expected to call it cross-origin.
var publicCORSConfig = &cors.Config{
	AllowOrigins: "*",
	AllowMethods: "GET,OPTIONS",
	AllowHeaders: "Origin, Content-Type, Accept, Authorization",
}

// MountAppRoutes returns a route mount function bound to the shared event
// store. All reporting endpoints read from the same snapshot.
func MountAppRoutes(st *store.Store) func(srv *cartridge.Server) {
	return func(srv *cartridge.Server) {
		cfg := config.GetConfig()

		// Rate limiting would interfere with tests, keep it production only.
		conditionalRateLimiter := func(limiter fiber.Handler) fiber.Handler {
			return func(c *fiber.Ctx) error {
				if cfg.IsProduction() {
					return limiter(c)
				}
				return c.Next()
			}
		}

		// 120/min per IP covers a dashboard polling every few seconds.
		apiRateLimiter := conditionalRateLimiter(cartridgemiddleware.RateLimiter(
			cartridgemiddleware.WithMax(120),
			cartridgemiddleware.WithDuration(time.Minute),
		))

		apiConfig := &cartridge.RouteConfig{
			EnableCORS:       true,
			CustomMiddleware: []fiber.Handler{apiRateLimiter},
			CORSConfig:       publicCORSConfig,
		}

		// Admin refresh is cheap to brute force a token against, keep it tight.
		adminRateLimiter := conditionalRateLimiter(cartridgemiddleware.RateLimiter(
			cartridgemiddleware.WithMax(10),
			cartridgemiddleware.WithDuration(time.Minute),
		))
		adminConfig := &cartridge.RouteConfig{
			CustomMiddleware: []fiber.Handler{adminRateLimiter},
		}

		// Health check endpoint
		srv.Get("/_health", http.HealthIndexAction(st))
		srv.Head("/_health", http.HealthIndexAction(st))

		// === REPORTING API ===
		srv.Get("/api/v1/events", http.EventsIndexAction(st), apiConfig)
		srv.Get("/api/v1/funnel", http.FunnelIndexAction(st), apiConfig)
		srv.Get("/api/v1/ab-tests", http.ABTestsIndexAction(st), apiConfig)
		srv.Get("/api/v1/trends", http.TrendsIndexAction(st), apiConfig)
		srv.Get("/api/v1/overview", http.OverviewIndexAction(st), apiConfig)
		srv.Get("/api/v1/dashboard", http.DashboardIndexAction(st), apiConfig)
		srv.Options("/api/v1/*", func(ctx *cartridge.Context) error {
			return ctx.SendStatus(fiber.StatusNoContent)
		}, apiConfig)

		// === ADMIN ===
		srv.Post("/admin/api/refresh", http.SystemRefreshAction(st), adminConfig)
	}
}

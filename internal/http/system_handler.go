package http

import (
	"crypto/subtle"

	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"

	"funnelpulse/internal/config"
	"funnelpulse/internal/store"
)

// SystemRefreshAction drops the cached snapshot and reloads it from the
// database. The admin token is compared in constant time; requests without
// a matching token get a 401.
func SystemRefreshAction(st *store.Store) func(ctx *cartridge.Context) error {
	return func(ctx *cartridge.Context) error {
		cfg := ctx.Config.(*config.Config)

		token := ctx.Get("X-Admin-Token")
		if cfg.AdminToken == "" ||
			subtle.ConstantTimeCompare([]byte(token), []byte(cfg.AdminToken)) != 1 {
			ctx.Logger.Warn("Rejected snapshot refresh request")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "unauthorized",
			})
		}

		st.Invalidate()
		if err := st.Reload(ctx.Context()); err != nil {
			ctx.Logger.Error("Snapshot refresh failed", slog.Any("error", err))
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "failed to reload snapshot",
			})
		}

		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": true,
			"events":  st.Len(),
		})
	}
}

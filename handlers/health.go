package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/paulaveiga/doceria-api/database"
	"github.com/paulaveiga/doceria-api/utils/response"
)

// HealthCheck handles GET /ping
func HealthCheck(store *database.GORMStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.HealthCheck(); err != nil {
			return response.Error(c, fiber.StatusServiceUnavailable, "Database unreachable", "SERVICE_UNAVAILABLE")
		}
		return response.SuccessWithMessage(c, "pong", nil)
	}
}

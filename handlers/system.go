// handlers/system.go - Health and version endpoints
package handlers

import (
	"time"

	"eyehunt/config"

	"github.com/gofiber/fiber/v2"
)

// Health reports process liveness.
// GET /system/health
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	})
}

// Version reports the deployed version.
// GET /system/version
func Version(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"version": config.Get().ProjectVersion})
}

// MapKey serves the map client id to the web frontend.
// GET /system/map-key
func MapKey(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"naver_map_client_id": config.Get().NaverMapClientID})
}

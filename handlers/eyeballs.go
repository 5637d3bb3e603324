// handlers/eyeballs.go - Eyeball lookup and QR endpoints
package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// GetEyeball returns one eyeball by id.
// GET /eyeballs/:id
func GetEyeball(c *fiber.Ctx) error {
	eyeball, err := eyeballSvc.GetEyeball(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(eyeball)
}

// EnsureQRCode backfills and returns the eyeball's printable QR value.
// POST /eyeballs/:id/qr
func EnsureQRCode(c *fiber.Ctx) error {
	eyeballID := c.Params("id")

	qrValue, err := eyeballSvc.EnsureQRCode(eyeballID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"eyeball_id": eyeballID, "qr_value": qrValue})
}

// ResolveQR resolves a scanned value to an eyeball by id or QR code.
// GET /eyeballs/qr/resolve?value=...
func ResolveQR(c *fiber.Ctx) error {
	value := c.Query("value")
	if value == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "value query parameter is required"})
	}

	eyeball, err := eyeballSvc.ResolveQR(value)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(eyeball)
}

// GetActiveCounts returns active eyeball counts per type name.
// GET /eyeballs/active/counts?game_id=...
func GetActiveCounts(c *fiber.Ctx) error {
	counts, err := eyeballSvc.ActiveCounts(c.Query("game_id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(counts)
}

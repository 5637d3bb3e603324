// handlers/captures.go - Capture creation endpoint
package handlers

import (
	"eyehunt/middleware"

	"github.com/gofiber/fiber/v2"
)

type CaptureCreateRequest struct {
	EyeballID string `json:"eyeball_id"`
	GroupID   string `json:"group_id,omitempty"`
}

// CreateCapture records a scan and awards points.
// POST /captures
func CreateCapture(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var req CaptureCreateRequest
	if err := c.BodyParser(&req); err != nil || req.EyeballID == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "eyeball_id is required"})
	}

	result, err := captureSvc.CreateCapture(req.EyeballID, req.GroupID, userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"id":          result.Capture.ID,
		"game_id":     result.Capture.GameID,
		"group_id":    result.Capture.GroupID,
		"user_id":     result.Capture.UserID,
		"eyeball_id":  result.Capture.EyeballID,
		"captured_at": result.Capture.CapturedAt,
		"points":      result.Points,
		"events":      result.Events,
	})
}

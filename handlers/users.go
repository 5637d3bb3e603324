// handlers/users.go - Profile endpoints
package handlers

import (
	"eyehunt/middleware"

	"github.com/gofiber/fiber/v2"
)

type ProfileUpdateRequest struct {
	Nickname  *string `json:"nickname,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// GetMe returns the caller's profile.
// GET /users/me
func GetMe(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	profile, err := profileSvc.GetProfile(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(profile)
}

// UpdateMe applies partial profile updates.
// PATCH /users/me
func UpdateMe(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var req ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.Nickname == nil && req.AvatarURL == nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "No changes"})
	}

	profile, err := profileSvc.UpdateProfile(userID, req.Nickname, req.AvatarURL)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(profile)
}

// GetMyCaptures returns the caller's capture history.
// GET /users/me/captures
func GetMyCaptures(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	captures, err := captureSvc.ListUserCaptures(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"captures": captures})
}

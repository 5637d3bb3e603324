// handlers/scores.go - Score read endpoints
package handlers

import (
	"eyehunt/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetMyScore returns the caller's personal score in the active game.
// GET /score/me
func GetMyScore(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	score, err := scoreSvc.GetMyScore(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(score)
}

// GetScoreSummary combines personal and team scores for the active game.
// GET /score/summary
func GetScoreSummary(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	summary, err := scoreSvc.GetSummary(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(summary)
}

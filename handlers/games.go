// handlers/games.go - Game read endpoints
package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// GetActiveGame returns the current active game, if any.
// GET /games/active
func GetActiveGame(c *fiber.Ctx) error {
	game, err := gameSvc.GetActiveGame()
	if err != nil {
		return serviceError(c, err)
	}
	if game == nil {
		return c.JSON(fiber.Map{"game": nil})
	}
	return c.JSON(fiber.Map{"game": game})
}

// GetGameEyeballs lists a game's eyeballs.
// GET /games/:id/eyeballs
func GetGameEyeballs(c *fiber.Ctx) error {
	gameID := c.Params("id")

	eyeballs, err := gameSvc.ListGameEyeballs(gameID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"game_id": gameID, "eyeballs": eyeballs})
}

// GetGameLeaderboard returns group standings for a game.
// GET /games/:id/leaderboard
func GetGameLeaderboard(c *fiber.Ctx) error {
	gameID := c.Params("id")

	leaderboard, err := gameSvc.GameLeaderboard(gameID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"game_id": gameID, "leaderboard": leaderboard})
}

// GetGameResult returns both the group and personal leaderboards.
// GET /games/:id/result
func GetGameResult(c *fiber.Ctx) error {
	gameID := c.Params("id")

	result, err := gameSvc.GameResult(gameID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"game_id":              gameID,
		"group_leaderboard":    result.GroupLeaderboard,
		"personal_leaderboard": result.PersonalLeaderboard,
	})
}

// GetGameCaptures returns a game's capture feed.
// GET /games/:id/captures
func GetGameCaptures(c *fiber.Ctx) error {
	gameID := c.Params("id")

	captures, err := gameSvc.GameCaptures(gameID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"game_id": gameID, "captures": captures})
}

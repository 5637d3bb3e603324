// handlers/groups.go - Group lifecycle endpoints
package handlers

import (
	"eyehunt/middleware"

	"github.com/gofiber/fiber/v2"
)

type GroupCreateRequest struct {
	GameID     string  `json:"game_id,omitempty"`
	Name       *string `json:"name,omitempty"`
	Code       *string `json:"code,omitempty"`
	MaxMembers int     `json:"max_members,omitempty"`
}

type GroupJoinRequest struct {
	Code string `json:"code"`
}

// CreateGroup creates a group owned by the caller.
// POST /groups
func CreateGroup(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var req GroupCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	group, err := groupSvc.CreateGroup(req.GameID, req.Name, req.Code, req.MaxMembers, userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(201).JSON(group)
}

// GetActiveGroups lists every group in the active game.
// GET /groups/active
func GetActiveGroups(c *fiber.Ctx) error {
	gameID, groups, err := groupSvc.ListActiveGroups()
	if err != nil {
		return serviceError(c, err)
	}
	if gameID == "" {
		return c.JSON(fiber.Map{"game_id": nil, "groups": groups})
	}
	return c.JSON(fiber.Map{"game_id": gameID, "groups": groups})
}

// JoinGroup adds the caller to the group behind a join code.
// POST /groups/join
func JoinGroup(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var req GroupJoinRequest
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Join code is required"})
	}

	group, alreadyMember, err := groupSvc.JoinGroup(req.Code, userID)
	if err != nil {
		return serviceError(c, err)
	}
	if alreadyMember {
		return c.JSON(fiber.Map{"id": group.ID, "message": "Already joined"})
	}
	return c.JSON(group)
}

// GetMyGroup returns the caller's current group.
// GET /groups/me
func GetMyGroup(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	group, err := groupSvc.GetMyGroup(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(group)
}

// GetGroupSnapshot returns a group with members and aggregate score.
// GET /groups/:id/snapshot
func GetGroupSnapshot(c *fiber.Ctx) error {
	snapshot, err := groupSvc.Snapshot(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(snapshot)
}

// GetGroupLeaderboard ranks a group's members by score.
// GET /groups/:id/leaderboard
func GetGroupLeaderboard(c *fiber.Ctx) error {
	groupID := c.Params("id")

	leaderboard, err := groupSvc.GroupLeaderboard(groupID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"group_id": groupID, "leaderboard": leaderboard})
}

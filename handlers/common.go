// handlers/common.go - Handler wiring and shared error mapping
package handlers

import (
	"errors"
	"log"

	"eyehunt/config"
	"eyehunt/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	dbConn     *gorm.DB
	authClient *services.AuthClient
	oauthSvc   *services.OAuthService
	profileSvc *services.ProfileService
	gameSvc    *services.GameService
	groupSvc   *services.GroupService
	captureSvc *services.CaptureService
	eyeballSvc *services.EyeballService
	scoreSvc   *services.ScoreService
)

// Init builds the service layer on top of db. Must run before
// RegisterRoutes.
func Init(db *gorm.DB) {
	cfg := config.Get()

	dbConn = db
	authClient = services.NewAuthClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	oauthSvc = services.NewOAuthService(authClient, cfg.GoogleRedirectURI)
	profileSvc = services.NewProfileService(db)
	gameSvc = services.NewGameService(db)
	groupSvc = services.NewGroupService(db)
	captureSvc = services.NewCaptureService(db)
	eyeballSvc = services.NewEyeballService(db)
	scoreSvc = services.NewScoreService(db)
}

// OAuthService exposes the handshake service for the cleanup scheduler.
func OAuthService() *services.OAuthService {
	return oauthSvc
}

// serviceError translates a service failure into the matching HTTP
// response. Raw database errors never reach the client.
func serviceError(c *fiber.Ctx, err error) error {
	var upstream *services.UpstreamAuthError
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Not found"})
	case errors.Is(err, services.ErrAlreadyCaptured):
		return c.Status(409).JSON(fiber.Map{"success": false, "error": "Already captured"})
	case errors.Is(err, services.ErrCodeAllocationFailed):
		return c.Status(409).JSON(fiber.Map{"success": false, "error": "Unable to allocate group code"})
	case errors.Is(err, services.ErrEyeballInactive):
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Eyeball inactive"})
	case errors.Is(err, services.ErrGroupRequired):
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "group_id is required when user has no group"})
	case errors.Is(err, services.ErrGroupGameMismatch):
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Group mismatch for game"})
	case errors.Is(err, services.ErrGroupFull):
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Group is full"})
	case errors.Is(err, services.ErrNoActiveGame):
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "No active game found. Provide game_id explicitly."})
	case errors.Is(err, services.ErrNotGroupMember):
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Not in group"})
	case errors.Is(err, services.ErrInvalidOAuthState):
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid or expired OAuth state"})
	case errors.As(err, &upstream):
		return c.Status(400).JSON(fiber.Map{"success": false, "error": upstream.Error()})
	default:
		log.Printf("❌ Internal error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Internal server error"})
	}
}

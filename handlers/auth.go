// handlers/auth.go - Signup, login and Google OAuth endpoints
package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type SignupRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Nickname  *string `json:"nickname,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers the user with the identity provider and lazily creates
// the local profile row.
// POST /auth/signup
func Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Valid email is required"})
	}
	if len(req.Password) < 6 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Password must be at least 6 characters"})
	}

	envelope, err := authClient.Signup(req.Email, req.Password)
	if err != nil {
		return serviceError(c, err)
	}

	user := envelope.User()
	userID, _ := user["id"].(string)
	if userID == "" {
		log.Printf("❌ Identity provider signup response missing user id")
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Identity provider user id missing in response"})
	}

	if _, err := profileSvc.EnsureProfile(userID, req.Nickname, req.AvatarURL, req.Email); err != nil {
		log.Printf("❌ Failed to ensure profile for user %s: %v", userID, err)
	}

	return c.JSON(fiber.Map{
		"user":    user,
		"session": envelope["session"],
	})
}

// Login exchanges credentials with the identity provider.
// POST /auth/login
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Email and password required"})
	}

	envelope, err := authClient.Login(req.Email, req.Password)
	if err != nil {
		return serviceError(c, err)
	}

	if user := envelope.User(); user != nil {
		if userID, _ := user["id"].(string); userID != "" {
			if _, err := profileSvc.EnsureProfile(userID, nil, nil, req.Email); err != nil {
				log.Printf("❌ Failed to ensure profile for user %s: %v", userID, err)
			}
		}
	}

	return c.JSON(envelope)
}

// GoogleLogin starts the PKCE handshake and hands the client the provider
// authorization URL.
// GET /auth/google/login
func GoogleLogin(c *fiber.Ctx) error {
	authURL, state, err := oauthSvc.Begin()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"auth_url": authURL, "state": state})
}

// GoogleCallback completes the PKCE handshake.
// GET /auth/google/callback?code=...&state=...
func GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Missing code or state in callback"})
	}

	envelope, err := oauthSvc.Complete(code, state)
	if err != nil {
		return serviceError(c, err)
	}

	if user := envelope.User(); user != nil {
		if userID, _ := user["id"].(string); userID != "" {
			var nickname, avatar *string
			if meta, ok := user["user_metadata"].(map[string]interface{}); ok {
				if name, ok := meta["full_name"].(string); ok && name != "" {
					nickname = &name
				}
				if url, ok := meta["avatar_url"].(string); ok && url != "" {
					avatar = &url
				}
			}
			email, _ := user["email"].(string)
			if _, err := profileSvc.EnsureProfile(userID, nickname, avatar, email); err != nil {
				log.Printf("❌ Failed to ensure profile for user %s: %v", userID, err)
			}
		}
	}

	return c.JSON(envelope)
}

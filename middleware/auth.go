// middleware/auth.go - Bearer token verification
package middleware

import (
	"strings"

	"eyehunt/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the Authorization bearer token and stores the
// authenticated user id and email in the request context. HMAC-family
// tokens verify against the configured provider secret; public-key-family
// tokens verify against the cached JWKS. The audience claim is not checked:
// the token is scoped by secret/key, not audience.
func AuthMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Missing authorization header"})
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid authorization header format"})
	}

	tokenString := parts[1]

	// Unverified probe of the header to pick the verification path
	unverified, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid authentication token"})
	}

	var token *jwt.Token
	switch unverified.Method.(type) {
	case *jwt.SigningMethodHMAC:
		token, err = parseHMAC(tokenString)
	case *jwt.SigningMethodECDSA, *jwt.SigningMethodRSA:
		token, err = parseWithJWKS(tokenString)
	default:
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unsupported signing algorithm"})
	}

	if err != nil {
		if fiberErr, ok := err.(*fiber.Error); ok {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"success": false, "error": fiberErr.Message})
		}
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid or expired token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid token claims"})
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid authentication token"})
	}

	c.Locals("userId", sub)
	if email, ok := claims["email"].(string); ok {
		c.Locals("userEmail", email)
	}

	return c.Next()
}

func parseHMAC(tokenString string) (*jwt.Token, error) {
	secret := config.Get().SupabaseJWTSecret
	if secret == "" {
		return nil, fiber.NewError(500, "SUPABASE_JWT_SECRET is not configured")
	}

	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(401, "Invalid signing method")
		}
		return []byte(secret), nil
	})
}

func parseWithJWKS(tokenString string) (*jwt.Token, error) {
	jwksURL := config.Get().SupabaseJWKSURL
	if jwksURL == "" {
		return nil, fiber.NewError(500, "SUPABASE_JWKS_URL is not configured")
	}

	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		keys, err := getVerifyingKeys(jwksURL)
		if err != nil {
			return nil, err
		}

		if kid, ok := token.Header["kid"].(string); ok && kid != "" {
			key, found := keys[kid]
			if !found {
				return nil, fiber.NewError(401, "Unknown signing key")
			}
			return key, nil
		}

		// No kid: only unambiguous when the set holds a single key
		if len(keys) == 1 {
			for _, key := range keys {
				return key, nil
			}
		}
		return nil, fiber.NewError(401, "Unable to select signing key")
	})
}

// GetUserID returns the authenticated user id set by AuthMiddleware.
func GetUserID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals("userId").(string)
	if !ok || userID == "" {
		return "", fiber.NewError(401, "User not authenticated")
	}
	return userID, nil
}

// GetUserEmail returns the authenticated user's email claim, if present.
func GetUserEmail(c *fiber.Ctx) string {
	email, _ := c.Locals("userEmail").(string)
	return email
}

// handlers/router.go - Route table
package handlers

import (
	"time"

	"eyehunt/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RegisterRoutes mounts the full API surface on app. Init must have been
// called first.
func RegisterRoutes(app *fiber.App) {
	// Auth routes with stricter rate limiting
	authGroup := app.Group("/auth")
	authGroup.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
	}))
	authGroup.Post("/signup", Signup)
	authGroup.Post("/login", Login)
	authGroup.Get("/google/login", GoogleLogin)
	authGroup.Get("/google/callback", GoogleCallback)

	// User routes
	userGroup := app.Group("/users")
	userGroup.Use(middleware.AuthMiddleware)
	userGroup.Get("/me", GetMe)
	userGroup.Patch("/me", UpdateMe)
	userGroup.Get("/me/captures", GetMyCaptures)

	// Game routes
	gameGroup := app.Group("/games")
	gameGroup.Use(middleware.AuthMiddleware)
	gameGroup.Get("/active", GetActiveGame)
	gameGroup.Get("/:id/eyeballs", GetGameEyeballs)
	gameGroup.Get("/:id/leaderboard", GetGameLeaderboard)
	gameGroup.Get("/:id/result", GetGameResult)
	gameGroup.Get("/:id/captures", GetGameCaptures)

	// Group routes
	groupGroup := app.Group("/groups")
	groupGroup.Use(middleware.AuthMiddleware)
	groupGroup.Post("/", CreateGroup)
	groupGroup.Get("/active", GetActiveGroups)
	groupGroup.Post("/join", JoinGroup)
	groupGroup.Get("/me", GetMyGroup)
	groupGroup.Get("/:id/snapshot", GetGroupSnapshot)
	groupGroup.Get("/:id/leaderboard", GetGroupLeaderboard)

	// Eyeball routes. The static /qr/resolve and /active/counts paths are
	// registered before the :id routes so they are not swallowed.
	eyeballGroup := app.Group("/eyeballs")
	eyeballGroup.Use(middleware.AuthMiddleware)
	eyeballGroup.Get("/qr/resolve", ResolveQR)
	eyeballGroup.Get("/active/counts", GetActiveCounts)
	eyeballGroup.Get("/:id", GetEyeball)
	eyeballGroup.Post("/:id/qr", EnsureQRCode)

	// Capture routes
	captureGroup := app.Group("/captures")
	captureGroup.Use(middleware.AuthMiddleware)
	captureGroup.Post("/", CreateCapture)

	// Score routes
	scoreGroup := app.Group("/score")
	scoreGroup.Use(middleware.AuthMiddleware)
	scoreGroup.Get("/me", GetMyScore)
	scoreGroup.Get("/summary", GetScoreSummary)

	// System routes
	systemGroup := app.Group("/system")
	systemGroup.Get("/health", Health)
	systemGroup.Get("/version", Version)
	systemGroup.Get("/map-key", MapKey)

	// Introspection pages (debug tooling)
	app.Get("/summary", SummaryIndex)
	app.Get("/summary/tables/:name", SummaryTable)
}

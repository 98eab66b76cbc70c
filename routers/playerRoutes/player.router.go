package playerRoutes

import (
	playerController "storefront/controllers/player"
	"storefront/middleware"
	playerValidator "storefront/validators/player"

	"github.com/gofiber/fiber/v2"
)

// SetupPlayerRoutes sets up the course player routes
func SetupPlayerRoutes(app *fiber.App) {
	playerGroup := app.Group("/player")

	// Open a player session for a course
	playerGroup.Get("/course/:id", middleware.JWTMiddleware, playerValidator.OpenPlayer(), playerController.OpenPlayer)

	// Session-scoped actions
	playerGroup.Post("/session/:sid/complete", middleware.JWTMiddleware, playerValidator.MarkComplete(), playerController.MarkComplete)
	playerGroup.Post("/session/:sid/select", middleware.JWTMiddleware, playerValidator.MarkComplete(), playerController.SelectContent)
	playerGroup.Post("/session/:sid/advance", middleware.JWTMiddleware, playerValidator.SessionAction(), playerController.Advance)
	playerGroup.Delete("/session/:sid", middleware.JWTMiddleware, playerValidator.SessionAction(), playerController.ClosePlayer)
}

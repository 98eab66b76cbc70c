package storeRoutes

import (
	storeController "storefront/controllers/store"
	"storefront/middleware"
	storeValidator "storefront/validators/store"

	"github.com/gofiber/fiber/v2"
)

// SetupStoreRoutes sets up the storefront routes: homepage, order
// confirmation flow and ebook previews
func SetupStoreRoutes(app *fiber.App) {
	storeGroup := app.Group("/store")

	// Homepage composition (public)
	storeGroup.Get("/home", storeController.GetHome)

	// Order confirmation flow
	storeGroup.Get("/orders/:id", middleware.JWTMiddleware, storeValidator.GetOrder(), storeController.GetOrderConfirmation)
	storeGroup.Post("/orders/:id/slip", middleware.JWTMiddleware, storeValidator.UploadSlip(), storeController.UploadSlip)
	storeGroup.Post("/orders/:id/await-payment", middleware.JWTMiddleware, storeValidator.GetOrder(), storeController.AwaitPayment)
	storeGroup.Post("/orders/:id/enroll/:courseId", middleware.JWTMiddleware, storeValidator.RetryEnrollment(), storeController.RetryEnrollment)

	// Ebook preview and file proxies
	storeGroup.Get("/ebooks/:id", middleware.JWTMiddleware, storeValidator.GetEbook(), storeController.GetEbook)
	storeGroup.Get("/ebooks/:id/view", middleware.JWTMiddleware, storeValidator.GetEbook(), storeController.ViewEbook)
	storeGroup.Get("/ebooks/:id/download", middleware.JWTMiddleware, storeValidator.GetEbook(), storeController.DownloadEbook)
}

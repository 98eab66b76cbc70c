package storeController

import (
	"storefront/backend"
	"storefront/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetEbook returns the ebook preview view model
func GetEbook(c *fiber.Ctx) error {
	ebookID := c.Locals("ebookID").(string)

	ebook, err := backend.API.FetchEbook(c.Context(), ebookID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ebook fetched successfully!", fiber.Map{
		"ebook":       ebook,
		"viewUrl":     "/store/ebooks/" + ebook.ID + "/view",
		"downloadUrl": "/store/ebooks/" + ebook.ID + "/download",
	})
}

// ViewEbook redirects the browser to the backend streaming proxy. These
// proxies are navigated to directly, never fetched as JSON.
func ViewEbook(c *fiber.Ctx) error {
	ebookID := c.Locals("ebookID").(string)

	ebook, err := backend.API.FetchEbook(c.Context(), ebookID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, err.Error(), nil)
	}

	return c.Redirect(backend.API.ProxyViewURL(ebook.PreviewURL), fiber.StatusFound)
}

// DownloadEbook redirects the browser to the backend PDF download proxy
func DownloadEbook(c *fiber.Ctx) error {
	ebookID := c.Locals("ebookID").(string)

	ebook, err := backend.API.FetchEbook(c.Context(), ebookID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, err.Error(), nil)
	}

	return c.Redirect(backend.API.ProxyDownloadURL(ebook.PreviewURL), fiber.StatusFound)
}

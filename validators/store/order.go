package storeValidator

import (
	"mime/multipart"
	"path/filepath"
	"storefront/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var allowedSlipExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// GetOrder validates the order id path parameter
func GetOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orderID := strings.TrimSpace(c.Params("id"))
		if orderID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Order ID is required!", nil)
		}

		c.Locals("orderID", orderID)
		return c.Next()
	}
}

// UploadSlip validates the multipart slip upload: exactly one image file
func UploadSlip() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orderID := strings.TrimSpace(c.Params("id"))
		if orderID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Order ID is required!", nil)
		}

		file, err := c.FormFile("file")
		if err != nil || file == nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Slip image file is required!", nil)
		}

		errors := make(map[string]string)

		if !allowedSlipExtensions[strings.ToLower(filepath.Ext(file.Filename))] {
			errors["file"] = "Slip must be an image (jpg, jpeg, png or webp)!"
		}
		if file.Size > 10*1024*1024 {
			errors["file"] = "Slip image must be smaller than 10 MB!"
		}
		if !isImageContentType(file) {
			errors["file"] = "Slip must be an image file!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("orderID", orderID)
		c.Locals("slipFile", file)
		return c.Next()
	}
}

// RetryEnrollment validates the manual enrollment retry parameters
func RetryEnrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orderID := strings.TrimSpace(c.Params("id"))
		courseID := strings.TrimSpace(c.Params("courseId"))

		errors := make(map[string]string)
		if orderID == "" {
			errors["orderId"] = "Order ID is required!"
		}
		if courseID == "" {
			errors["courseId"] = "Course ID is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("orderID", orderID)
		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// GetEbook validates the ebook id path parameter
func GetEbook() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ebookID := strings.TrimSpace(c.Params("id"))
		if ebookID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ebook ID is required!", nil)
		}

		c.Locals("ebookID", ebookID)
		return c.Next()
	}
}

func isImageContentType(file *multipart.FileHeader) bool {
	contentType := file.Header.Get("Content-Type")
	return contentType == "" || strings.HasPrefix(contentType, "image/")
}

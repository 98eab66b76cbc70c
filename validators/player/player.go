package playerValidator

import (
	"storefront/middleware"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// OpenPlayer validates the course id path parameter
func OpenPlayer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := strings.TrimSpace(c.Params("id"))
		if courseID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// SessionAction validates the session id for session-scoped routes
func SessionAction() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := strings.TrimSpace(c.Params("sid"))
		if sessionID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Session ID is required!", nil)
		}

		c.Locals("sessionID", sessionID)
		return c.Next()
	}
}

// MarkComplete validates the mark-completed request body
func MarkComplete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := strings.TrimSpace(c.Params("sid"))
		if sessionID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Session ID is required!", nil)
		}

		reqData := new(struct {
			ContentID string `json:"contentId" validate:"required"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"contentId": "Content ID is required!",
			})
		}

		c.Locals("sessionID", sessionID)
		c.Locals("validatedMarkComplete", reqData)
		return c.Next()
	}
}

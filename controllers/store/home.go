package storeController

import (
	"storefront/middleware"

	"github.com/gofiber/fiber/v2"
)

// HomeSection is one marketing block of the homepage, with the entrance
// animation hint the page applies when the section scrolls into view
type HomeSection struct {
	Key       string `json:"key"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle,omitempty"`
	Animation string `json:"animation"`
	Order     int    `json:"order"`
}

// homeSections is the static composition of the marketing homepage
var homeSections = []HomeSection{
	{Key: "hero", Title: "Learn without limits", Subtitle: "Courses and ebooks from working practitioners", Animation: "fade-up", Order: 1},
	{Key: "featured-courses", Title: "Featured courses", Animation: "fade-up", Order: 2},
	{Key: "ebooks", Title: "Ebook library", Animation: "fade-up", Order: 3},
	{Key: "testimonials", Title: "What learners say", Animation: "fade-in", Order: 4},
	{Key: "cta", Title: "Start learning today", Animation: "zoom-in", Order: 5},
}

// GetHome composes the homepage sections. Pure assembly, no logic.
func GetHome(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Home sections fetched successfully!", fiber.Map{
		"sections": homeSections,
	})
}

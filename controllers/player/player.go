package playerController

import (
	"storefront/backend"
	"storefront/middleware"
	"storefront/models"
	"storefront/player"

	"github.com/gofiber/fiber/v2"
)

// playItem is one entry of the flattened play order as the player renders it
type playItem struct {
	models.Content
	Playable bool   `json:"playable"`
	Provider string `json:"provider,omitempty"`
	EmbedURL string `json:"embedUrl,omitempty"`
	Viewed   bool   `json:"viewed"`
}

// OpenPlayer loads the course and enrollment for the signed-in user, opens a
// player session and returns the full player view model
func OpenPlayer(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(string)

	view, err := backend.API.FetchCourse(c.Context(), courseID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, err.Error(), nil)
	}

	session := player.NewSession(backend.API, userID, view)
	player.Sessions.Put(session)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course loaded successfully!", playerView(session))
}

// MarkComplete marks one content item as completed. Already-viewed and
// unknown ids are no-ops; backend failures roll the optimistic update back
// and surface the message alongside the reverted state.
func MarkComplete(c *fiber.Ctx) error {
	session, resp := sessionFromLocals(c)
	if session == nil {
		return resp
	}

	reqData := c.Locals("validatedMarkComplete").(*struct {
		ContentID string `json:"contentId" validate:"required"`
	})

	state, err := session.MarkCompleted(c.Context(), reqData.ContentID)
	if err == player.ErrSessionClosed {
		return middleware.JsonResponse(c, fiber.StatusGone, false, "Player session closed!", nil)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, err.Error(), state)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content marked as completed successfully!", state)
}

// Advance implements "play next": mark the current item completed and move to
// the next playable video in play order
func Advance(c *fiber.Ctx) error {
	session, resp := sessionFromLocals(c)
	if session == nil {
		return resp
	}

	state, hasNext, err := session.Advance(c.Context())
	if err == player.ErrSessionClosed {
		return middleware.JsonResponse(c, fiber.StatusGone, false, "Player session closed!", nil)
	}

	data := fiber.Map{"state": state, "hasNext": hasNext}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, err.Error(), data)
	}
	if !hasNext {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No further playable video in this course.", data)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Advanced to next video!", data)
}

// SelectContent moves the play position without mutating progress
func SelectContent(c *fiber.Ctx) error {
	session, resp := sessionFromLocals(c)
	if session == nil {
		return resp
	}

	reqData := c.Locals("validatedMarkComplete").(*struct {
		ContentID string `json:"contentId" validate:"required"`
	})

	state, ok := session.Goto(reqData.ContentID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found in this course!", state)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content selected!", state)
}

// ClosePlayer tears the session down (page unmount)
func ClosePlayer(c *fiber.Ctx) error {
	sessionID := c.Locals("sessionID").(string)
	player.Sessions.Remove(sessionID)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Player session closed.", nil)
}

func sessionFromLocals(c *fiber.Ctx) (*player.Session, error) {
	if _, ok := c.Locals("userId").(string); !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	sessionID := c.Locals("sessionID").(string)

	session, ok := player.Sessions.Get(sessionID)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Player session not found!", nil)
	}
	return session, nil
}

func playerView(session *player.Session) fiber.Map {
	state := session.State()
	contents := session.Contents()

	items := make([]playItem, len(contents))
	viewed := make(map[string]bool, len(state.ViewedContentIDs))
	for _, id := range state.ViewedContentIDs {
		viewed[id] = true
	}
	for i, content := range contents {
		provider, embedURL := player.DetectEmbed(content.URL)
		items[i] = playItem{
			Content:  content,
			Playable: player.Playable(content),
			Provider: provider,
			EmbedURL: embedURL,
			Viewed:   viewed[content.ID],
		}
	}

	return fiber.Map{
		"sessionId": session.ID,
		"course": fiber.Map{
			"id":           session.Course.ID,
			"title":        session.Course.Title,
			"description":  session.Course.Description,
			"author":       session.Course.Author,
			"thumbnailUrl": session.Course.ThumbnailURL,
			"chapters":     session.Course.Chapters,
		},
		"playOrder": items,
		"state":     state,
	}
}

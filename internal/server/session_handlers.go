package server

import (
	"psidiario/internal/models"
	"psidiario/internal/session"

	"github.com/gofiber/fiber/v2"
)

// sessionPayload is what the client needs to draw the right screen: the auth
// state (never including the password) and the current view.
func (s *Server) sessionPayload() fiber.Map {
	state := s.session.State()

	var user any
	if state.User != nil {
		user = state.User.Sanitized()
	}

	return fiber.Map{
		"isAuthenticated": state.IsAuthenticated,
		"user":            user,
		"view":            s.session.CurrentView(),
	}
}

// GetSession handles GET /api/session.
func (s *Server) GetSession(c *fiber.Ctx) error {
	return c.JSON(s.sessionPayload())
}

// Navigate handles POST /api/navigate. The requested view goes through the
// route guard, so the response view may differ from the request.
func (s *Server) Navigate(c *fiber.Ctx) error {
	var req struct {
		View string `json:"view"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	target, err := session.ParseView(req.View)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	s.session.Navigate(target)
	return c.JSON(s.sessionPayload())
}

package server

import (
	"psidiario/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetBookingLinks handles GET /api/booking/links.
func (s *Server) GetBookingLinks(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(s.bookingService.Links(*user))
}

package server

import (
	"psidiario/internal/models"
	"psidiario/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateEntry handles POST /api/entries.
func (s *Server) CreateEntry(c *fiber.Ctx) error {
	var req struct {
		Date  string `json:"date"`
		Notes string `json:"notes"`
		Mood  int    `json:"mood"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	entry, err := s.entryService.Create(c.Context(), service.CreateEntryInput{
		UserID: s.currentUserID(c),
		Date:   req.Date,
		Notes:  req.Notes,
		Mood:   req.Mood,
	})
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "VALIDATION_ERROR" {
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registro salvo com sucesso!",
		"entry":   entry,
	})
}

// GetEntries handles GET /api/entries, most recent first.
func (s *Server) GetEntries(c *fiber.Ctx) error {
	entries, err := s.entryService.ListByUser(c.Context(), s.currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"entries": entries,
		"total":   len(entries),
	})
}

// GetDashboard handles GET /api/dashboard.
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	summary, err := s.entryService.Dashboard(c.Context(), s.currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(summary)
}

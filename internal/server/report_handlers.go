package server

import (
	"fmt"
	"strconv"
	"time"

	"psidiario/internal/models"
	"psidiario/internal/observability"
	"psidiario/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetReport handles GET /api/reports?period=&visible=.
func (s *Server) GetReport(c *fiber.Ctx) error {
	period, err := service.ParsePeriod(c.Query("period"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	visible := 0
	if raw := c.Query("visible"); raw != "" {
		visible, err = strconv.Atoi(raw)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("visible must be a number"))
		}
	}

	report, err := s.reportService.Build(c.Context(), s.currentUserID(c), period, visible, time.Now())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(report)
}

// ExportReport handles GET /api/reports/export?period=. The PDF carries the
// entries surviving the same period filter the report screen shows.
func (s *Server) ExportReport(c *fiber.Ctx) error {
	period, err := service.ParsePeriod(c.Query("period"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	entries, _, err := s.reportService.WorkingSet(c.Context(), user.ID, period, time.Now())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if len(entries) == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Não há registros para gerar relatório neste período."))
	}

	doc, err := s.exporter.Generate(*user, entries)
	if err != nil {
		observability.PDFExports.WithLabelValues("failure").Inc()
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			&models.AppError{Code: "PDF_EXPORT_FAILED", Message: "Ocorreu um erro ao gerar o PDF.", Err: err})
	}
	payload, err := doc.Bytes()
	if err != nil {
		observability.PDFExports.WithLabelValues("failure").Inc()
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			&models.AppError{Code: "PDF_EXPORT_FAILED", Message: "Ocorreu um erro ao gerar o PDF.", Err: err})
	}
	observability.PDFExports.WithLabelValues("success").Inc()

	// The filename carries the raw period selector, not the display label:
	// the label is localized and would put non-ASCII into filename= quoting.
	filename := fmt.Sprintf("Relatorio_%s_%s.pdf", user.Username, period)
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(payload)
}

// currentUser resolves the authenticated user's full record. The session
// state usually has it already; fall back to the users collection when the
// token outlived the persisted session.
func (s *Server) currentUser(c *fiber.Ctx) (*models.User, error) {
	userID := s.currentUserID(c)

	if state := s.session.State(); state.User != nil && state.User.ID == userID {
		return state.User, nil
	}

	users, err := s.userRepo.List(c.Context())
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == userID {
			return &users[i], nil
		}
	}
	return nil, models.NewNotFoundError("User", userID)
}

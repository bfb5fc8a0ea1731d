package server

import (
	"crowdnest/internal/models"
	"crowdnest/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ReportProject handles POST /api/projects/:id/report
func (s *Server) ReportProject(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	projectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var in service.ReportProjectInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	in.ReporterID = userID
	in.ProjectID = projectID

	report, err := s.reportService.ReportProject(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// ReportComment handles POST /api/comments/:id/report
func (s *Server) ReportComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var in service.ReportCommentInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	in.ReporterID = userID
	in.CommentID = commentID

	report, err := s.reportService.ReportComment(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

package server

import (
	"crowdnest/internal/models"
	"crowdnest/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/projects/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	projectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var in service.CreateCommentInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	in.UserID = userID
	in.ProjectID = projectID

	comment, err := s.commentService.CreateComment(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments handles GET /api/projects/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	projectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListComments(c.Context(), projectID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"comments": comments})
}

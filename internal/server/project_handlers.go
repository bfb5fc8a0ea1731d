package server

import (
	"crowdnest/internal/models"
	"crowdnest/internal/repository"
	"crowdnest/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProjects handles GET /api/projects
// Supported query parameters: title, tag, category (case-insensitive
// containment, combined with AND), limit and offset.
func (s *Server) GetProjects(c *fiber.Ctx) error {
	p := parsePagination(c, repository.DefaultPageSize)
	filter := repository.ProjectFilter{
		Title:    c.Query("title"),
		Tag:      c.Query("tag"),
		Category: c.Query("category"),
	}

	projects, err := s.projectService.ListProjects(c.Context(), filter, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"projects": projects,
		"limit":    p.Limit,
		"offset":   p.Offset,
	})
}

// GetProject handles GET /api/projects/:id
// When the caller is authenticated, the response includes their own rating.
func (s *Server) GetProject(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	project, err := s.projectService.GetProject(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	resp := fiber.Map{"project": project}
	if userID, ok := s.optionalUserID(c); ok {
		if rating, err := s.ledgerRepo.GetRating(c.Context(), userID, id); err == nil {
			resp["my_rating"] = rating.Rating
		}
	}
	return c.JSON(resp)
}

// CreateProject handles POST /api/projects
func (s *Server) CreateProject(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var in service.CreateProjectInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	in.UserID = userID

	project, err := s.projectService.CreateProject(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// UpdateProject handles PUT /api/projects/:id
func (s *Server) UpdateProject(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var in service.UpdateProjectInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	in.UserID = userID
	in.ProjectID = id

	project, err := s.projectService.UpdateProject(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(project)
}

// CancelProject handles POST /api/projects/:id/cancel
func (s *Server) CancelProject(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.projectService.CancelProject(c.Context(), userID, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Project cancelled"})
}

// GetMyProjects handles GET /api/users/me/projects
func (s *Server) GetMyProjects(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	projects, err := s.projectService.ListUserProjects(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"projects": projects})
}

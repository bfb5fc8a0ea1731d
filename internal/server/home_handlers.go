package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetHomepage handles GET /api/home
func (s *Server) GetHomepage(c *fiber.Ctx) error {
	home, err := s.projectService.GetHomepage(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(home)
}

// GetCategories handles GET /api/categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.projectService.ListCategories(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// GetCategory handles GET /api/categories/:id
func (s *Server) GetCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	category, err := s.projectService.GetCategory(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(category)
}

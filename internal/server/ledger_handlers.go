package server

import (
	"crowdnest/internal/models"
	"crowdnest/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateDonation handles POST /api/projects/:id/donations
func (s *Server) CreateDonation(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	projectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var in service.DonateInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	in.UserID = userID
	in.ProjectID = projectID

	donation, err := s.ledgerService.Donate(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(donation)
}

// GetProjectDonations handles GET /api/projects/:id/donations
func (s *Server) GetProjectDonations(c *fiber.Ctx) error {
	projectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	donations, err := s.ledgerService.ListProjectDonations(c.Context(), projectID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"donations": donations})
}

// GetMyDonations handles GET /api/users/me/donations
func (s *Server) GetMyDonations(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	donations, err := s.ledgerService.ListUserDonations(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"donations": donations})
}

// RateProject handles POST /api/projects/:id/rating
func (s *Server) RateProject(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	projectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var in service.RateInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	in.UserID = userID
	in.ProjectID = projectID

	rating, average, err := s.ledgerService.Rate(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"rating":         rating,
		"average_rating": average,
	})
}

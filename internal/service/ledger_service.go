package service

import (
	"context"
	"errors"

	"crowdnest/internal/middleware"
	"crowdnest/internal/models"
	"crowdnest/internal/repository"

	"github.com/shopspring/decimal"
)

// LedgerService implements donation and rating operations.
type LedgerService struct {
	ledgerRepo  repository.LedgerRepository
	projectRepo repository.ProjectRepository
}

// DonateInput is the payload for pledging toward a project.
type DonateInput struct {
	UserID    uint
	ProjectID uint
	Amount    decimal.Decimal `json:"amount"`
}

// RateInput is the payload for scoring a project.
type RateInput struct {
	UserID    uint
	ProjectID uint
	Rating    int `json:"rating"`
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(ledgerRepo repository.LedgerRepository, projectRepo repository.ProjectRepository) *LedgerService {
	return &LedgerService{ledgerRepo: ledgerRepo, projectRepo: projectRepo}
}

// Donate records a pledge. The repository enforces the cap protocol; this
// layer validates the amount and keeps the acceptance counters current.
func (s *LedgerService) Donate(ctx context.Context, in DonateInput) (*models.Donation, error) {
	if !in.Amount.IsPositive() {
		return nil, models.NewValidationError("Donation amount must be positive")
	}

	donation := &models.Donation{
		UserID:    in.UserID,
		ProjectID: in.ProjectID,
		Amount:    in.Amount,
	}
	if err := s.ledgerRepo.CreateDonation(ctx, donation); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && models.IsRejectedDonation(err) {
			middleware.DonationsRejected.WithLabelValues(appErr.Code).Inc()
		}
		return nil, err
	}
	middleware.DonationsAccepted.Inc()
	return donation, nil
}

// Rate records or replaces the user's 1-5 score for a project. Returns the
// stored rating row together with the project's new mean rating.
func (s *LedgerService) Rate(ctx context.Context, in RateInput) (*models.Rating, float64, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, 0, models.NewValidationError("Rating must be between 1 and 5")
	}

	rating := &models.Rating{
		UserID:    in.UserID,
		ProjectID: in.ProjectID,
		Rating:    in.Rating,
	}
	average, err := s.ledgerRepo.UpsertRating(ctx, rating)
	if err != nil {
		return nil, 0, err
	}
	middleware.RatingsRecorded.Inc()
	return rating, average, nil
}

// ListProjectDonations returns a project's donations, newest first. The
// project must exist.
func (s *LedgerService) ListProjectDonations(ctx context.Context, projectID uint) ([]*models.Donation, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.ListDonationsByProject(ctx, projectID)
}

func (s *LedgerService) ListUserDonations(ctx context.Context, userID uint) ([]*models.Donation, error) {
	return s.ledgerRepo.ListDonationsByUser(ctx, userID)
}

package repository

import (
	"context"
	"errors"
	"time"

	"crowdnest/internal/cache"
	"crowdnest/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerRepository defines the interface for donation and rating writes.
// Both write paths run inside a single transaction that locks the project
// row, so the cached aggregates on the project can never drift from the
// underlying rows under concurrent requests.
type LedgerRepository interface {
	CreateDonation(ctx context.Context, donation *models.Donation) error
	ListDonationsByProject(ctx context.Context, projectID uint) ([]*models.Donation, error)
	ListDonationsByUser(ctx context.Context, userID uint) ([]*models.Donation, error)
	UpsertRating(ctx context.Context, rating *models.Rating) (float64, error)
	GetRating(ctx context.Context, userID, projectID uint) (*models.Rating, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

// lockProject loads the project row for update. SQLite serializes writers at
// the connection level, so the explicit row lock is only applied on Postgres.
func (r *ledgerRepository) lockProject(tx *gorm.DB, id uint) (*models.Project, error) {
	var project models.Project
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(&project, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.NewNotFoundError("Project", id)
		}
		return nil, err
	}
	return &project, nil
}

// CreateDonation accepts or rejects a pledge against the project's cap.
// Checks run in order against the locked row: already funded, campaign
// cancelled or ended, amount over the remaining headroom. On acceptance the donation row
// and the project's cached total are written in the same transaction.
func (r *ledgerRepository) CreateDonation(ctx context.Context, donation *models.Donation) error {
	if !donation.Amount.IsPositive() {
		return models.NewValidationError("donation amount must be positive")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := r.lockProject(tx, donation.ProjectID)
		if err != nil {
			return err
		}

		if project.TotalDonations.GreaterThanOrEqual(project.Cap) {
			return models.NewAlreadyFundedError()
		}
		if project.IsCancelled || project.Ended(time.Now()) {
			return models.NewCampaignEndedError()
		}
		remaining := project.Remaining()
		if donation.Amount.GreaterThan(remaining) {
			return models.NewExceedsRemainingError(remaining.StringFixed(2))
		}

		if err := tx.Create(donation).Error; err != nil {
			return err
		}
		return tx.Model(&models.Project{}).
			Where("id = ?", project.ID).
			Update("total_donations", project.TotalDonations.Add(donation.Amount)).Error
	})
	if err == nil {
		cache.Invalidate(ctx, cache.ProjectKey(donation.ProjectID), cache.HomepageKey)
	}
	return err
}

func (r *ledgerRepository) ListDonationsByProject(ctx context.Context, projectID uint) ([]*models.Donation, error) {
	var donations []*models.Donation
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&donations).Error
	return donations, err
}

func (r *ledgerRepository) ListDonationsByUser(ctx context.Context, userID uint) ([]*models.Donation, error) {
	var donations []*models.Donation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&donations).Error
	return donations, err
}

// UpsertRating writes the user's score for a project, replacing any earlier
// one, then recomputes the project's mean rating from the rating rows inside
// the same transaction. Returns the new mean; the rating row is read back so
// its ID and timestamps are populated on the replacement path too.
func (r *ledgerRepository) UpsertRating(ctx context.Context, rating *models.Rating) (float64, error) {
	var mean float64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := r.lockProject(tx, rating.ProjectID)
		if err != nil {
			return err
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "project_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
		}).Create(rating).Error; err != nil {
			return err
		}
		// When the conflict path fires the insert is skipped, leaving the
		// struct without its stored ID and timestamps.
		if err := tx.Where("user_id = ? AND project_id = ?", rating.UserID, rating.ProjectID).
			First(rating).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Rating{}).
			Where("project_id = ?", project.ID).
			Select("COALESCE(AVG(rating), 0)").
			Scan(&mean).Error; err != nil {
			return err
		}
		return tx.Model(&models.Project{}).
			Where("id = ?", project.ID).
			Update("total_rating", mean).Error
	})
	if err != nil {
		return 0, err
	}
	cache.Invalidate(ctx, cache.ProjectKey(rating.ProjectID), cache.HomepageKey)
	return mean, nil
}

func (r *ledgerRepository) GetRating(ctx context.Context, userID, projectID uint) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Rating", projectID)
		}
		return nil, err
	}
	return &rating, nil
}

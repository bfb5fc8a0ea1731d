package service

import (
	"context"
	"testing"

	"crowdnest/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerService_Donate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("valid donation passes through", func(t *testing.T) {
		t.Parallel()
		svc := NewLedgerService(noopLedgerRepo(), noopProjectRepo())
		donation, err := svc.Donate(ctx, DonateInput{
			UserID: 1, ProjectID: 1, Amount: decimal.RequireFromString("10"),
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, donation.ID)
	})

	t.Run("zero amount rejected before hitting the repository", func(t *testing.T) {
		t.Parallel()
		repo := noopLedgerRepo()
		called := false
		repo.createDonationFn = func(_ context.Context, _ *models.Donation) error {
			called = true
			return nil
		}
		svc := NewLedgerService(repo, noopProjectRepo())

		_, err := svc.Donate(ctx, DonateInput{UserID: 1, ProjectID: 1, Amount: decimal.Zero})
		assertValidationError(t, err)
		assert.False(t, called)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewLedgerService(noopLedgerRepo(), noopProjectRepo())
		_, err := svc.Donate(ctx, DonateInput{
			UserID: 1, ProjectID: 1, Amount: decimal.RequireFromString("-3"),
		})
		assertValidationError(t, err)
	})

	t.Run("ledger rejection is surfaced unchanged", func(t *testing.T) {
		t.Parallel()
		repo := noopLedgerRepo()
		repo.createDonationFn = func(_ context.Context, _ *models.Donation) error {
			return models.NewAlreadyFundedError()
		}
		svc := NewLedgerService(repo, noopProjectRepo())

		_, err := svc.Donate(ctx, DonateInput{
			UserID: 1, ProjectID: 1, Amount: decimal.RequireFromString("1"),
		})
		assert.True(t, models.IsRejectedDonation(err))
	})
}

func TestLedgerService_Rate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("valid rating returns the new mean", func(t *testing.T) {
		t.Parallel()
		svc := NewLedgerService(noopLedgerRepo(), noopProjectRepo())
		rating, average, err := svc.Rate(ctx, RateInput{UserID: 1, ProjectID: 1, Rating: 5})
		require.NoError(t, err)
		assert.Equal(t, 5, rating.Rating)
		assert.InDelta(t, 5.0, average, 1e-9)
	})

	t.Run("score outside 1-5 rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewLedgerService(noopLedgerRepo(), noopProjectRepo())

		_, _, err := svc.Rate(ctx, RateInput{UserID: 1, ProjectID: 1, Rating: 0})
		assertValidationError(t, err)

		_, _, err = svc.Rate(ctx, RateInput{UserID: 1, ProjectID: 1, Rating: 6})
		assertValidationError(t, err)
	})
}

func TestLedgerService_ListProjectDonations_MissingProject(t *testing.T) {
	t.Parallel()
	repo := noopProjectRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Project, error) {
		return nil, models.NewNotFoundError("Project", id)
	}
	svc := NewLedgerService(noopLedgerRepo(), repo)

	_, err := svc.ListProjectDonations(context.Background(), 42)
	assert.True(t, models.IsNotFound(err))
}

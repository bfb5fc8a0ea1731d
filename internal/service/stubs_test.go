package service

import (
	"context"
	"testing"

	"crowdnest/internal/models"
	"crowdnest/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// projectRepoStub is a stub for repository.ProjectRepository.
type projectRepoStub struct {
	createFn      func(context.Context, *models.Project) error
	getByIDFn     func(context.Context, uint) (*models.Project, error)
	listFn        func(context.Context, repository.ProjectFilter, int, int) ([]*models.Project, error)
	getByUserIDFn func(context.Context, uint) ([]*models.Project, error)
	topRatedFn    func(context.Context, int) ([]*models.Project, error)
	latestFn      func(context.Context, int) ([]*models.Project, error)
	featuredFn    func(context.Context, int) ([]*models.Project, error)
	updateFn      func(context.Context, *models.Project) error
	cancelFn      func(context.Context, uint) error
}

func (s *projectRepoStub) Create(ctx context.Context, p *models.Project) error {
	return s.createFn(ctx, p)
}
func (s *projectRepoStub) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	return s.getByIDFn(ctx, id)
}
func (s *projectRepoStub) List(ctx context.Context, f repository.ProjectFilter, limit, offset int) ([]*models.Project, error) {
	return s.listFn(ctx, f, limit, offset)
}
func (s *projectRepoStub) GetByUserID(ctx context.Context, userID uint) ([]*models.Project, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *projectRepoStub) TopRated(ctx context.Context, limit int) ([]*models.Project, error) {
	return s.topRatedFn(ctx, limit)
}
func (s *projectRepoStub) Latest(ctx context.Context, limit int) ([]*models.Project, error) {
	return s.latestFn(ctx, limit)
}
func (s *projectRepoStub) Featured(ctx context.Context, limit int) ([]*models.Project, error) {
	return s.featuredFn(ctx, limit)
}
func (s *projectRepoStub) Update(ctx context.Context, p *models.Project) error {
	return s.updateFn(ctx, p)
}
func (s *projectRepoStub) Cancel(ctx context.Context, id uint) error {
	return s.cancelFn(ctx, id)
}

func noopProjectRepo() *projectRepoStub {
	activeProject := func() *models.Project {
		return &models.Project{
			ID:             1,
			UserID:         1,
			Cap:            decimal.RequireFromString("100"),
			TotalDonations: decimal.RequireFromString("0"),
		}
	}
	return &projectRepoStub{
		createFn:  func(_ context.Context, p *models.Project) error { p.ID = 1; return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Project, error) { return activeProject(), nil },
		listFn: func(_ context.Context, _ repository.ProjectFilter, _, _ int) ([]*models.Project, error) {
			return nil, nil
		},
		getByUserIDFn: func(_ context.Context, _ uint) ([]*models.Project, error) { return nil, nil },
		topRatedFn:    func(_ context.Context, _ int) ([]*models.Project, error) { return nil, nil },
		latestFn:      func(_ context.Context, _ int) ([]*models.Project, error) { return nil, nil },
		featuredFn:    func(_ context.Context, _ int) ([]*models.Project, error) { return nil, nil },
		updateFn:      func(_ context.Context, _ *models.Project) error { return nil },
		cancelFn:      func(_ context.Context, _ uint) error { return nil },
	}
}

// categoryRepoStub is a stub for repository.CategoryRepository.
type categoryRepoStub struct {
	listWithCountsFn func(context.Context) ([]*models.Category, error)
	getByIDFn        func(context.Context, uint) (*models.Category, error)
	ensureTagsFn     func(context.Context, []string) ([]models.Tag, error)
}

func (s *categoryRepoStub) ListWithCounts(ctx context.Context) ([]*models.Category, error) {
	return s.listWithCountsFn(ctx)
}
func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}
func (s *categoryRepoStub) EnsureTags(ctx context.Context, names []string) ([]models.Tag, error) {
	return s.ensureTagsFn(ctx, names)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		listWithCountsFn: func(_ context.Context) ([]*models.Category, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Category, error) {
			return &models.Category{ID: id, Name: "Community"}, nil
		},
		ensureTagsFn: func(_ context.Context, names []string) ([]models.Tag, error) {
			tags := make([]models.Tag, len(names))
			for i, n := range names {
				tags[i] = models.Tag{ID: uint(i + 1), Name: n}
			}
			return tags, nil
		},
	}
}

// ledgerRepoStub is a stub for repository.LedgerRepository.
type ledgerRepoStub struct {
	createDonationFn func(context.Context, *models.Donation) error
	listByProjectFn  func(context.Context, uint) ([]*models.Donation, error)
	listByUserFn     func(context.Context, uint) ([]*models.Donation, error)
	upsertRatingFn   func(context.Context, *models.Rating) (float64, error)
	getRatingFn      func(context.Context, uint, uint) (*models.Rating, error)
}

func (s *ledgerRepoStub) CreateDonation(ctx context.Context, d *models.Donation) error {
	return s.createDonationFn(ctx, d)
}
func (s *ledgerRepoStub) ListDonationsByProject(ctx context.Context, projectID uint) ([]*models.Donation, error) {
	return s.listByProjectFn(ctx, projectID)
}
func (s *ledgerRepoStub) ListDonationsByUser(ctx context.Context, userID uint) ([]*models.Donation, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *ledgerRepoStub) UpsertRating(ctx context.Context, r *models.Rating) (float64, error) {
	return s.upsertRatingFn(ctx, r)
}
func (s *ledgerRepoStub) GetRating(ctx context.Context, userID, projectID uint) (*models.Rating, error) {
	return s.getRatingFn(ctx, userID, projectID)
}

func noopLedgerRepo() *ledgerRepoStub {
	return &ledgerRepoStub{
		createDonationFn: func(_ context.Context, d *models.Donation) error { d.ID = 1; return nil },
		listByProjectFn:  func(_ context.Context, _ uint) ([]*models.Donation, error) { return nil, nil },
		listByUserFn:     func(_ context.Context, _ uint) ([]*models.Donation, error) { return nil, nil },
		upsertRatingFn: func(_ context.Context, r *models.Rating) (float64, error) {
			r.ID = 1
			return float64(r.Rating), nil
		},
		getRatingFn:      func(_ context.Context, _, _ uint) (*models.Rating, error) { return &models.Rating{}, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn        func(context.Context, *models.Comment) error
	getByIDFn       func(context.Context, uint) (*models.Comment, error)
	listByProjectFn func(context.Context, uint) ([]*models.Comment, error)
	deleteFn        func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByProject(ctx context.Context, projectID uint) ([]*models.Comment, error) {
	return s.listByProjectFn(ctx, projectID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:        func(_ context.Context, c *models.Comment) error { c.ID = 1; return nil },
		getByIDFn:       func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByProjectFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
	}
}

// reportRepoStub is a stub for repository.ReportRepository.
type reportRepoStub struct {
	projectReportFn func(context.Context, *models.ReportProject) error
	commentReportFn func(context.Context, *models.ReportComment) error
}

func (s *reportRepoStub) CreateProjectReport(ctx context.Context, r *models.ReportProject) error {
	return s.projectReportFn(ctx, r)
}
func (s *reportRepoStub) CreateCommentReport(ctx context.Context, r *models.ReportComment) error {
	return s.commentReportFn(ctx, r)
}

func noopReportRepo() *reportRepoStub {
	return &reportRepoStub{
		projectReportFn: func(_ context.Context, r *models.ReportProject) error { r.ID = 1; return nil },
		commentReportFn: func(_ context.Context, r *models.ReportComment) error { r.ID = 1; return nil },
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, models.IsValidation(err), "expected validation error, got %v", err)
}

// Package service contains the business rules between the HTTP handlers and
// the repositories.
package service

import (
	"context"
	"strings"
	"time"

	"crowdnest/internal/cache"
	"crowdnest/internal/models"
	"crowdnest/internal/repository"

	"github.com/shopspring/decimal"
)

const homepageSectionSize = 5

// ProjectService implements the campaign operations.
type ProjectService struct {
	projectRepo  repository.ProjectRepository
	categoryRepo repository.CategoryRepository
}

// CreateProjectInput carries the fields needed to launch a campaign.
type CreateProjectInput struct {
	UserID     uint
	Title      string          `json:"title"`
	Details    string          `json:"details"`
	CategoryID uint            `json:"category_id"`
	Cap        decimal.Decimal `json:"cap"`
	StartTime  time.Time       `json:"start_time"`
	EndTime    *time.Time      `json:"end_time"`
	Tags       []string        `json:"tags"`
	ImageURLs  []string        `json:"image_urls"`
}

// UpdateProjectInput carries the owner-editable fields of a campaign.
type UpdateProjectInput struct {
	UserID    uint
	ProjectID uint
	Title     string     `json:"title"`
	Details   string     `json:"details"`
	EndTime   *time.Time `json:"end_time"`
	Tags      []string   `json:"tags"`
}

// Homepage is the aggregated landing page payload.
type Homepage struct {
	TopRated   []*models.Project  `json:"top_rated"`
	Latest     []*models.Project  `json:"latest"`
	Featured   []*models.Project  `json:"featured"`
	Categories []*models.Category `json:"categories"`
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, categoryRepo repository.CategoryRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, categoryRepo: categoryRepo}
}

func (s *ProjectService) CreateProject(ctx context.Context, in CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Details) == "" {
		return nil, models.NewValidationError("Details are required")
	}
	if !in.Cap.IsPositive() {
		return nil, models.NewValidationError("Cap must be positive")
	}
	if len(in.ImageURLs) < 1 || len(in.ImageURLs) > 5 {
		return nil, models.NewValidationError("Between 1 and 5 images are required")
	}
	for _, u := range in.ImageURLs {
		if strings.TrimSpace(u) == "" {
			return nil, models.NewValidationError("Image URL cannot be empty")
		}
	}
	if in.StartTime.IsZero() {
		return nil, models.NewValidationError("Start time is required")
	}
	if in.EndTime != nil && in.EndTime.Before(in.StartTime) {
		return nil, models.NewValidationError("End time must be after start time")
	}
	if _, err := s.categoryRepo.GetByID(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	tags, err := s.categoryRepo.EnsureTags(ctx, in.Tags)
	if err != nil {
		return nil, err
	}

	images := make([]models.ProjectImage, len(in.ImageURLs))
	for i, u := range in.ImageURLs {
		images[i] = models.ProjectImage{URL: u, Index: i}
	}

	project := &models.Project{
		Title:      in.Title,
		Details:    in.Details,
		CategoryID: in.CategoryID,
		UserID:     in.UserID,
		Cap:        in.Cap,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		Tags:       tags,
		Images:     images,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return s.projectRepo.GetByID(ctx, project.ID)
}

func (s *ProjectService) GetProject(ctx context.Context, id uint) (*models.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

func (s *ProjectService) ListProjects(ctx context.Context, filter repository.ProjectFilter, limit, offset int) ([]*models.Project, error) {
	return s.projectRepo.List(ctx, filter, limit, offset)
}

func (s *ProjectService) ListUserProjects(ctx context.Context, userID uint) ([]*models.Project, error) {
	return s.projectRepo.GetByUserID(ctx, userID)
}

func (s *ProjectService) UpdateProject(ctx context.Context, in UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != in.UserID {
		return nil, models.NewForbiddenError("Only the project owner can update it")
	}

	if strings.TrimSpace(in.Title) != "" {
		project.Title = in.Title
	}
	if strings.TrimSpace(in.Details) != "" {
		project.Details = in.Details
	}
	if in.EndTime != nil {
		if in.EndTime.Before(project.StartTime) {
			return nil, models.NewValidationError("End time must be after start time")
		}
		project.EndTime = in.EndTime
	}
	if in.Tags != nil {
		tags, err := s.categoryRepo.EnsureTags(ctx, in.Tags)
		if err != nil {
			return nil, err
		}
		project.Tags = tags
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return s.projectRepo.GetByID(ctx, project.ID)
}

// CancelProject marks the campaign as cancelled. Only the owner may cancel,
// and only while the campaign is active with less than a quarter of the cap
// raised.
func (s *ProjectService) CancelProject(ctx context.Context, userID, projectID uint) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.UserID != userID {
		return models.NewForbiddenError("Only the project owner can cancel it")
	}
	project.RefreshDerived(time.Now())
	if !project.CanCancel {
		return models.NewValidationError("Project can no longer be cancelled")
	}
	return s.projectRepo.Cancel(ctx, projectID)
}

// GetHomepage aggregates the landing page sections, cached as one payload.
func (s *ProjectService) GetHomepage(ctx context.Context) (*Homepage, error) {
	var home Homepage
	err := cache.Aside(ctx, cache.HomepageKey, &home, cache.HomepageTTL, func() error {
		var err error
		if home.TopRated, err = s.projectRepo.TopRated(ctx, homepageSectionSize); err != nil {
			return err
		}
		if home.Latest, err = s.projectRepo.Latest(ctx, homepageSectionSize); err != nil {
			return err
		}
		if home.Featured, err = s.projectRepo.Featured(ctx, homepageSectionSize); err != nil {
			return err
		}
		home.Categories, err = s.categoryRepo.ListWithCounts(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &home, nil
}

func (s *ProjectService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.ListWithCounts(ctx)
}

func (s *ProjectService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

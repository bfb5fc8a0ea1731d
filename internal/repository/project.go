// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"crowdnest/internal/cache"
	"crowdnest/internal/models"

	"gorm.io/gorm"
)

// DefaultPageSize is used by list queries that do not ask for a specific
// limit; MaxPageSize bounds explicitly requested page sizes.
const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// ProjectFilter narrows project listings. All set fields are combined with
// AND; each one matches case-insensitively anywhere in the target text.
type ProjectFilter struct {
	Title    string
	Tag      string
	Category string
}

// ProjectRepository defines the interface for project data operations
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	List(ctx context.Context, filter ProjectFilter, limit, offset int) ([]*models.Project, error)
	GetByUserID(ctx context.Context, userID uint) ([]*models.Project, error)
	TopRated(ctx context.Context, limit int) ([]*models.Project, error)
	Latest(ctx context.Context, limit int) ([]*models.Project, error)
	Featured(ctx context.Context, limit int) ([]*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Cancel(ctx context.Context, id uint) error
}

// projectRepository implements ProjectRepository
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	err := r.db.WithContext(ctx).Create(project).Error
	if err == nil {
		cache.Invalidate(ctx, cache.HomepageKey)
	}
	return err
}

// applyProjectDetails adds subqueries to fetch rating and donation counts in
// a single query.
func (r *projectRepository) applyProjectDetails(db *gorm.DB) *gorm.DB {
	return db.Select("projects.*, " +
		"(SELECT COUNT(*) FROM ratings WHERE ratings.project_id = projects.id) as rating_count, " +
		"(SELECT COUNT(*) FROM donations WHERE donations.project_id = projects.id) as donation_count")
}

func (r *projectRepository) preloadAll(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("User").
		Preload("Tags").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order(`project_images."index" ASC`)
		})
}

func (r *projectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	key := cache.ProjectKey(id)

	err := cache.Aside(ctx, key, &project, cache.ProjectTTL, func() error {
		return r.preloadAll(r.applyProjectDetails(r.db.WithContext(ctx))).
			First(&project, id).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.NewNotFoundError("Project", id)
		}
		return nil, err
	}
	return &project, nil
}

// applyFilter appends case-insensitive containment matches. LOWER/LIKE keeps
// the query portable between Postgres and SQLite.
func (r *projectRepository) applyFilter(db *gorm.DB, filter ProjectFilter) *gorm.DB {
	if filter.Title != "" {
		db = db.Where("LOWER(projects.title) LIKE LOWER(?)", "%"+filter.Title+"%")
	}
	if filter.Category != "" {
		db = db.Joins("JOIN categories ON categories.id = projects.category_id").
			Where("LOWER(categories.name) LIKE LOWER(?)", "%"+filter.Category+"%")
	}
	if filter.Tag != "" {
		db = db.Joins("JOIN project_tags ON project_tags.project_id = projects.id").
			Joins("JOIN tags ON tags.id = project_tags.tag_id").
			Where("LOWER(tags.name) LIKE LOWER(?)", "%"+filter.Tag+"%").
			Distinct("projects.*")
	}
	return db
}

func (r *projectRepository) List(ctx context.Context, filter ProjectFilter, limit, offset int) ([]*models.Project, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	var projects []*models.Project
	q := r.applyFilter(r.db.WithContext(ctx).Model(&models.Project{}).Select("projects.*"), filter)
	err := r.preloadAll(q).
		Order("projects.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&projects).Error
	return projects, err
}

func (r *projectRepository) GetByUserID(ctx context.Context, userID uint) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.preloadAll(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

func (r *projectRepository) TopRated(ctx context.Context, limit int) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.preloadAll(r.db.WithContext(ctx)).
		Where("is_cancelled = ?", false).
		Order("total_rating DESC, created_at DESC").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}

func (r *projectRepository) Latest(ctx context.Context, limit int) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.preloadAll(r.db.WithContext(ctx)).
		Where("is_cancelled = ?", false).
		Order("created_at DESC").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}

func (r *projectRepository) Featured(ctx context.Context, limit int) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.preloadAll(r.db.WithContext(ctx)).
		Where("is_featured = ? AND is_cancelled = ?", true, false).
		Order("created_at DESC").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.ProjectKey(project.ID), cache.HomepageKey)
	return nil
}

func (r *projectRepository) Cancel(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", id).
		Update("is_cancelled", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Project", id)
	}
	cache.Invalidate(ctx, cache.ProjectKey(id), cache.HomepageKey)
	return nil
}

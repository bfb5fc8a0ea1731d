package repository

import (
	"context"
	"strings"

	"crowdnest/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category and tag operations
type CategoryRepository interface {
	ListWithCounts(ctx context.Context) ([]*models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	EnsureTags(ctx context.Context, names []string) ([]models.Tag, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) ListWithCounts(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Select("categories.*, " +
			"(SELECT COUNT(*) FROM projects WHERE projects.category_id = categories.id AND projects.deleted_at IS NULL) as projects_count").
		Order("categories.name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Preload("Projects", func(db *gorm.DB) *gorm.DB {
			return db.Order("projects.created_at DESC")
		}).
		Preload("Projects.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order(`project_images."index" ASC`)
		}).
		First(&category, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.NewNotFoundError("Category", id)
		}
		return nil, err
	}
	return &category, nil
}

// EnsureTags returns tag rows for the given names, creating any that do not
// exist yet. Names are trimmed and matched case-insensitively; blanks and
// duplicates are dropped.
func (r *categoryRepository) EnsureTags(ctx context.Context, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	seen := map[string]struct{}{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		lower := strings.ToLower(name)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}

		var tag models.Tag
		err := r.db.WithContext(ctx).
			Where("LOWER(name) = ?", lower).
			First(&tag).Error
		if err == gorm.ErrRecordNotFound {
			tag = models.Tag{Name: name}
			if err := r.db.WithContext(ctx).Create(&tag).Error; err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

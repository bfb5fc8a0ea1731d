package repository

import (
	"context"
	"errors"

	"crowdnest/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByProject(ctx context.Context, projectID uint) ([]*models.Comment, error)
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create stores a comment. A reply must point at a top-level comment on the
// same project; replies to replies are rejected.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.ParentID != nil {
		var parent models.Comment
		if err := r.db.WithContext(ctx).First(&parent, *comment.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Comment", *comment.ParentID)
			}
			return err
		}
		if parent.ProjectID != comment.ProjectID {
			return models.NewNotFoundError("Comment", *comment.ParentID)
		}
		if parent.IsReply() {
			return models.NewValidationError("cannot reply to a reply")
		}
	}
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, err
	}
	return &comment, nil
}

// ListByProject returns the project's top-level comments, newest first, each
// with its replies oldest first.
func (r *commentRepository) ListByProject(ctx context.Context, projectID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Replies.User").
		Where("project_id = ? AND parent_id IS NULL", projectID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error
}

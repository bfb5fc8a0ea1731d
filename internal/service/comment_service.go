package service

import (
	"context"
	"strings"

	"crowdnest/internal/models"
	"crowdnest/internal/repository"
)

// CommentService implements project discussion operations.
type CommentService struct {
	commentRepo repository.CommentRepository
	projectRepo repository.ProjectRepository
}

// CreateCommentInput is the payload for posting a comment or a reply.
type CreateCommentInput struct {
	UserID    uint
	ProjectID uint
	Text      string `json:"text"`
	ParentID  *uint  `json:"parent_id"`
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repository.CommentRepository, projectRepo repository.ProjectRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, projectRepo: projectRepo}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	if _, err := s.projectRepo.GetByID(ctx, in.ProjectID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		UserID:    in.UserID,
		ProjectID: in.ProjectID,
		Text:      in.Text,
		ParentID:  in.ParentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListComments(ctx context.Context, projectID uint) ([]*models.Comment, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByProject(ctx, projectID)
}

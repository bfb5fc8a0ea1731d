package repository

import (
	"context"
	"errors"

	"crowdnest/internal/models"

	"gorm.io/gorm"
)

// ReportRepository defines interface for abuse report operations
type ReportRepository interface {
	CreateProjectReport(ctx context.Context, report *models.ReportProject) error
	CreateCommentReport(ctx context.Context, report *models.ReportComment) error
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CreateProjectReport(ctx context.Context, report *models.ReportProject) error {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, report.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Project", report.ProjectID)
		}
		return err
	}
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) CreateCommentReport(ctx context.Context, report *models.ReportComment) error {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, report.CommentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Comment", report.CommentID)
		}
		return err
	}
	return r.db.WithContext(ctx).Create(report).Error
}

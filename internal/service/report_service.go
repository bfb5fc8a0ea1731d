package service

import (
	"context"
	"strings"

	"crowdnest/internal/models"
	"crowdnest/internal/repository"
)

// ReportService implements abuse report operations.
type ReportService struct {
	reportRepo repository.ReportRepository
}

// ReportProjectInput flags a project as inappropriate.
type ReportProjectInput struct {
	ReporterID uint
	ProjectID  uint
	Reason     string `json:"reason"`
}

// ReportCommentInput flags a comment as inappropriate.
type ReportCommentInput struct {
	ReporterID uint
	CommentID  uint
	Reason     string `json:"reason"`
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo repository.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

func (s *ReportService) ReportProject(ctx context.Context, in ReportProjectInput) (*models.ReportProject, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return nil, models.NewValidationError("Report reason is required")
	}
	report := &models.ReportProject{
		ReporterID: in.ReporterID,
		ProjectID:  in.ProjectID,
		Reason:     in.Reason,
	}
	if err := s.reportRepo.CreateProjectReport(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) ReportComment(ctx context.Context, in ReportCommentInput) (*models.ReportComment, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return nil, models.NewValidationError("Report reason is required")
	}
	report := &models.ReportComment{
		ReporterID: in.ReporterID,
		CommentID:  in.CommentID,
		Reason:     in.Reason,
	}
	if err := s.reportRepo.CreateCommentReport(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

package models

import "time"

// ReportProject is a user-submitted flag of abusive content on a project.
// Repeated reports by the same user are allowed.
type ReportProject struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReporterID uint      `gorm:"not null;index" json:"reporter_id"`
	ProjectID  uint      `gorm:"not null;index" json:"project_id"`
	Reason     string    `gorm:"type:text;not null" json:"reason"`
	CreatedAt  time.Time `json:"created_at"`

	Reporter User    `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	Project  Project `gorm:"foreignKey:ProjectID" json:"-"`
}

// ReportComment is a user-submitted flag of abusive content on a comment.
type ReportComment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReporterID uint      `gorm:"not null;index" json:"reporter_id"`
	CommentID  uint      `gorm:"not null;index" json:"comment_id"`
	Reason     string    `gorm:"type:text;not null" json:"reason"`
	CreatedAt  time.Time `json:"created_at"`

	Reporter User    `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	Comment  Comment `gorm:"foreignKey:CommentID" json:"-"`
}

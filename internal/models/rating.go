package models

import "time"

// Rating is a 1-5 star score for a project.
// The combination of UserID and ProjectID must be unique.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_project_rating" json:"user_id"`
	ProjectID uint      `gorm:"not null;uniqueIndex:idx_user_project_rating" json:"project_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a message on a project. Threading is one level deep: a reply
// carries the ID of a top-level comment in ParentID and can itself never be
// replied to.
type Comment struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Text      string `gorm:"type:text;not null" json:"text"`
	UserID    uint   `gorm:"not null;index" json:"user_id"`
	ProjectID uint   `gorm:"not null;index" json:"project_id"`
	ParentID  *uint  `gorm:"index" json:"parent_id,omitempty"`

	User    User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Project Project   `gorm:"foreignKey:ProjectID" json:"-"`
	Replies []Comment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsReply reports whether the comment is a reply to another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account. Email is the login identifier.
type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	FirstName   string     `gorm:"not null" json:"first_name"`
	LastName    string     `gorm:"not null" json:"last_name"`
	Email       string     `gorm:"unique;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	PhoneNumber string     `json:"phone_number"`
	Avatar      string     `json:"avatar"`
	Birthdate   *time.Time `json:"birthdate,omitempty"`
	Country     string     `gorm:"type:varchar(2)" json:"country"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Projects []Project `gorm:"foreignKey:UserID" json:"projects,omitempty"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

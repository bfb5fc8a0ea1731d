package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation records a single pledge toward a project's cap. Rows are
// append-only; the project's cached TotalDonations is kept in sync by the
// ledger repository inside the same transaction.
type Donation struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	ProjectID uint            `gorm:"not null;index" json:"project_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}

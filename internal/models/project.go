package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Project represents a fundraising campaign with a donation cap and a
// running time window. TotalDonations and TotalRating are cached aggregates
// maintained by the ledger repository; everything else derived from them is
// recomputed on read and never persisted.
type Project struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	Title      string   `gorm:"not null" json:"title"`
	Details    string   `gorm:"type:text;not null" json:"details"`
	CategoryID uint     `gorm:"not null;index" json:"category_id"`
	Category   Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	UserID     uint     `gorm:"not null;index" json:"user_id"`
	User       User     `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Cap            decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cap"`
	TotalDonations decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total_donations"`
	TotalRating    float64         `gorm:"not null;default:0" json:"total_rating"`

	StartTime   time.Time  `gorm:"not null" json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	IsFeatured  bool       `gorm:"default:false" json:"is_featured"`
	IsCancelled bool       `gorm:"default:false" json:"is_cancelled"`

	Tags      []Tag          `gorm:"many2many:project_tags" json:"tags,omitempty"`
	Images    []ProjectImage `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Donations []Donation     `gorm:"foreignKey:ProjectID" json:"-"`
	Ratings   []Rating       `gorm:"foreignKey:ProjectID" json:"-"`
	Comments  []Comment      `gorm:"foreignKey:ProjectID" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"modified_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// RatingCount is not persisted; computed at query time
	RatingCount int64 `gorm:"->;-:migration" json:"rating_count"`
	// DonationCount is not persisted; computed at query time
	DonationCount int64 `gorm:"->;-:migration" json:"donation_count"`

	// Pure derivations of the stored fields, refreshed by AfterFind.
	ProgressPercentage float64 `gorm:"-" json:"progress_percentage"`
	DaysRemaining      int     `gorm:"-" json:"days_remaining"`
	IsActive           bool    `gorm:"-" json:"is_active"`
	CanCancel          bool    `gorm:"-" json:"can_cancel"`
}

// ProjectImage is an ordered image reference owned by a project. The image
// bytes live in external storage; only the URL reference is kept here.
type ProjectImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProjectID uint   `gorm:"not null;index" json:"project_id"`
	URL       string `gorm:"not null" json:"url"`
	Index     int    `gorm:"not null;default:0" json:"index"`
}

// AfterFind refreshes the computed fields whenever a project is loaded.
func (p *Project) AfterFind(*gorm.DB) error {
	p.RefreshDerived(time.Now())
	return nil
}

// RefreshDerived recomputes progress, remaining days, active state and the
// cancellation eligibility from the stored columns as of now.
func (p *Project) RefreshDerived(now time.Time) {
	p.ProgressPercentage = p.Progress()
	p.DaysRemaining = p.RemainingDays(now)
	p.IsActive = p.Active(now)
	p.CanCancel = p.ProgressPercentage < 25 && p.IsActive
}

// Progress returns total donations as a percentage of the cap, 0 when the
// cap is unset.
func (p *Project) Progress() float64 {
	if p.Cap.IsPositive() {
		pct, _ := p.TotalDonations.Div(p.Cap).Mul(decimal.NewFromInt(100)).Float64()
		return pct
	}
	return 0
}

// Remaining returns how much can still be donated before the cap is reached.
func (p *Project) Remaining() decimal.Decimal {
	return p.Cap.Sub(p.TotalDonations)
}

// RemainingDays returns whole days until the end date, never negative, and 0
// when no end date is set.
func (p *Project) RemainingDays(now time.Time) int {
	if p.EndTime == nil {
		return 0
	}
	days := int(truncateToDate(*p.EndTime).Sub(truncateToDate(now)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Active reports whether the campaign window covers today and the project has
// not been cancelled. Both dates must be set.
func (p *Project) Active(now time.Time) bool {
	if p.EndTime == nil {
		return false
	}
	today := truncateToDate(now)
	return !truncateToDate(p.StartTime).After(today) &&
		!truncateToDate(*p.EndTime).Before(today) &&
		!p.IsCancelled
}

// Ended reports whether the campaign's end date has passed. Open-ended
// projects never end.
func (p *Project) Ended(now time.Time) bool {
	return p.EndTime != nil && truncateToDate(*p.EndTime).Before(truncateToDate(now))
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

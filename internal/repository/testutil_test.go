package repository

import (
	"testing"
	"time"

	"crowdnest/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Project{},
		&models.ProjectImage{},
		&models.Donation{},
		&models.Rating{},
		&models.Comment{},
		&models.ReportProject{},
		&models.ReportComment{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "hashed",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return category
}

// seedProject creates a project with the given cap, running from yesterday
// for thirty days.
func seedProject(t *testing.T, db *gorm.DB, owner *models.User, category *models.Category, capAmount string, overrides ...func(*models.Project)) *models.Project {
	t.Helper()
	start := time.Now().AddDate(0, 0, -1)
	end := start.AddDate(0, 0, 30)
	project := &models.Project{
		Title:      "Community Garden",
		Details:    "Build a garden for the neighborhood.",
		CategoryID: category.ID,
		UserID:     owner.ID,
		Cap:        decimal.RequireFromString(capAmount),
		StartTime:  start,
		EndTime:    &end,
		Images: []models.ProjectImage{
			{URL: "https://example.com/garden-1.jpg", Index: 0},
		},
	}
	for _, override := range overrides {
		override(project)
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return project
}

// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"crowdnest/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		FirstName:   gofakeit.FirstName(),
		LastName:    gofakeit.LastName(),
		Email:       gofakeit.Email(),
		Password:    string(hashedPassword),
		PhoneNumber: gofakeit.Phone(),
		Avatar:      fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Country:     gofakeit.CountryAbr(),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateCategory persists a category with the given name.
func (f *Factory) CreateCategory(name string) (*models.Category, error) {
	category := &models.Category{Name: name}
	if err := f.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// CreateProject constructs and persists a sample project for the user, with
// a realistic time window, a handful of images, and a couple of tags.
func (f *Factory) CreateProject(user *models.User, category *models.Category, overrides ...func(*models.Project)) (*models.Project, error) {
	start := time.Now().AddDate(0, 0, -f.rand.Intn(30))
	end := start.AddDate(0, 0, 30+f.rand.Intn(60))

	numImages := 1 + f.rand.Intn(5)
	images := make([]models.ProjectImage, numImages)
	for i := range images {
		images[i] = models.ProjectImage{
			URL:   fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
			Index: i,
		}
	}

	project := &models.Project{
		Title:      gofakeit.Sentence(4),
		Details:    gofakeit.Paragraph(2, 4, 8, "\n"),
		CategoryID: category.ID,
		UserID:     user.ID,
		Cap:        decimal.NewFromInt(int64(1000 + f.rand.Intn(49000))),
		StartTime:  start,
		EndTime:    &end,
		IsFeatured: f.rand.Intn(5) == 0,
		Images:     images,
		Tags: []models.Tag{
			{Name: gofakeit.Word()},
			{Name: gofakeit.Word()},
		},
	}

	for _, override := range overrides {
		override(project)
	}

	if err := f.db.Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// CreateComment persists a comment by the user on the project. Pass a parent
// to create a reply.
func (f *Factory) CreateComment(user *models.User, project *models.Project, parent *models.Comment) (*models.Comment, error) {
	comment := &models.Comment{
		Text:      gofakeit.Sentence(8 + f.rand.Intn(12)),
		UserID:    user.ID,
		ProjectID: project.ID,
	}
	if parent != nil {
		comment.ParentID = &parent.ID
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

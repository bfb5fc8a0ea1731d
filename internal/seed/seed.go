package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"crowdnest/internal/models"
	"crowdnest/internal/repository"
	"crowdnest/internal/service"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumProjects int
	ShouldClean bool
}

var categoryNames = []string{
	"Technology", "Art", "Music", "Film", "Games",
	"Food", "Health", "Education", "Environment", "Community",
}

// Seed populates the database with test data. Donations go through the
// ledger service so every seeded project respects its cap.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d projects...", opts.NumUsers, opts.NumProjects)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	ctx := context.Background()
	f := NewFactory(db)
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	categories := make([]*models.Category, 0, len(categoryNames))
	for _, name := range categoryNames {
		category, err := f.CreateCategory(name)
		if err != nil {
			return fmt.Errorf("failed to create category %q: %w", name, err)
		}
		categories = append(categories, category)
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return fmt.Errorf("at least one user is required")
	}

	ledgerRepo := repository.NewLedgerRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	ledger := service.NewLedgerService(ledgerRepo, projectRepo)

	for i := 0; i < opts.NumProjects; i++ {
		owner := users[r.Intn(len(users))]
		category := categories[r.Intn(len(categories))]
		project, err := f.CreateProject(owner, category)
		if err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		// Donations: a random spread of backers, rejections are expected
		// when a pledge lands over the remaining headroom.
		for d := 0; d < r.Intn(8); d++ {
			backer := users[r.Intn(len(users))]
			amount := decimal.NewFromInt(int64(10 + r.Intn(2000)))
			_, err := ledger.Donate(ctx, service.DonateInput{
				UserID:    backer.ID,
				ProjectID: project.ID,
				Amount:    amount,
			})
			if err != nil && !models.IsRejectedDonation(err) {
				return fmt.Errorf("failed to seed donation: %w", err)
			}
		}

		// Ratings
		for _, u := range pickUsers(r, users, r.Intn(5)) {
			_, _, err := ledger.Rate(ctx, service.RateInput{
				UserID:    u.ID,
				ProjectID: project.ID,
				Rating:    1 + r.Intn(5),
			})
			if err != nil {
				return fmt.Errorf("failed to seed rating: %w", err)
			}
		}

		// Comments with an occasional reply
		for cIdx := 0; cIdx < r.Intn(4); cIdx++ {
			author := users[r.Intn(len(users))]
			comment, err := f.CreateComment(author, project, nil)
			if err != nil {
				return fmt.Errorf("failed to seed comment: %w", err)
			}
			if r.Intn(3) == 0 {
				replier := users[r.Intn(len(users))]
				if _, err := f.CreateComment(replier, project, comment); err != nil {
					return fmt.Errorf("failed to seed reply: %w", err)
				}
			}
		}
	}

	log.Println("✨ Seeding complete.")
	log.Println("📧 All test users have the password: password123")
	return nil
}

// pickUsers returns up to n distinct users.
func pickUsers(r *rand.Rand, users []*models.User, n int) []*models.User {
	if n > len(users) {
		n = len(users)
	}
	perm := r.Perm(len(users))
	picked := make([]*models.User, 0, n)
	for _, idx := range perm[:n] {
		picked = append(picked, users[idx])
	}
	return picked
}

// clearData removes seeded rows in dependency order.
func clearData(db *gorm.DB) error {
	tables := []string{
		"report_comments", "report_projects",
		"comments", "ratings", "donations",
		"project_tags", "project_images", "projects",
		"tags", "categories", "users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"crowdnest/internal/config"
	"crowdnest/internal/database"
	"crowdnest/internal/models"
	"crowdnest/internal/repository"
	"crowdnest/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPassword = "Sup3rSecret!Pass"

// newTestServer builds a Server against an in-memory database with routes
// registered. The prometheus middleware is left nil so repeated test runs do
// not collide on metric registration.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))

	s := &Server{
		config:       &config.Config{JWTSecret: "test-secret-key-for-tests-only"},
		db:           db,
		userRepo:     repository.NewUserRepository(db),
		projectRepo:  repository.NewProjectRepository(db),
		categoryRepo: repository.NewCategoryRepository(db),
		ledgerRepo:   repository.NewLedgerRepository(db),
		commentRepo:  repository.NewCommentRepository(db),
		reportRepo:   repository.NewReportRepository(db),
	}
	s.projectService = service.NewProjectService(s.projectRepo, s.categoryRepo)
	s.ledgerService = service.NewLedgerService(s.ledgerRepo, s.projectRepo)
	s.commentService = service.NewCommentService(s.commentRepo, s.projectRepo)
	s.reportService = service.NewReportService(s.reportRepo)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app, db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  string(hash),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProject(t *testing.T, db *gorm.DB, owner *models.User, capAmount string) *models.Project {
	t.Helper()
	category := &models.Category{Name: fmt.Sprintf("Category %d", time.Now().UnixNano())}
	require.NoError(t, db.Create(category).Error)

	start := time.Now().AddDate(0, 0, -1)
	end := time.Now().AddDate(0, 0, 30)
	project := &models.Project{
		Title:      "Community Garden",
		Details:    "Growing food together.",
		CategoryID: category.ID,
		UserID:     owner.ID,
		Cap:        decimal.RequireFromString(capAmount),
		StartTime:  start,
		EndTime:    &end,
		Images:     []models.ProjectImage{{URL: "https://example.com/a.jpg", Index: 0}},
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

func bearerToken(t *testing.T, s *Server, user *models.User) string {
	t.Helper()
	token, err := s.generateToken(user.ID, user.Email)
	require.NoError(t, err)
	return "Bearer " + token
}

// doRequest issues a JSON request against the test app. body may be nil.
func doRequest(t *testing.T, app *fiber.App, method, path, auth string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

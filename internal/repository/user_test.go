package repository

import (
	"context"
	"regexp"
	"testing"

	"crowdnest/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
			WithArgs(1, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email"}).
				AddRow(1, "Ada", "Lovelace", "ada@example.com"))

		user, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
			WithArgs(42, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, 42)
		assert.True(t, models.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
			WithArgs("ada@example.com", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).
				AddRow(1, "ada@example.com"))

		user, err := repo.GetByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.EqualValues(t, 1, user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing user returns nil without error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
			WithArgs("nobody@example.com", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		user, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(errDuplicateKey{})
	mock.ExpectRollback()

	err := repo.Create(ctx, &models.User{Email: "ada@example.com"})
	assert.True(t, models.IsValidation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

type errDuplicateKey struct{}

func (errDuplicateKey) Error() string {
	return `duplicate key value violates unique constraint "uni_users_email" (SQLSTATE 23505)`
}

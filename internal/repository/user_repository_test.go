package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Mirap9615/owowclub-sub000/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func userColumns() []string {
	return []string{
		"user_id", "email", "name", "membership_type", "is_admin",
		"password_hash", "registration_token", "reset_token", "reset_token_expires_at",
		"created_at",
	}
}

func TestUserRepository_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("successfully creates a user", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewUserRepository(sqlxDB)

		mock.ExpectExec(`INSERT INTO users`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		user := &models.User{Email: "test@example.com", Name: "Test"}
		err := repo.CreateUser(ctx, user, "password123")

		assert.NoError(t, err)
		assert.NotEmpty(t, user.UserID)
		require.NotNil(t, user.PasswordHash)
		assert.NotEqual(t, "password123", *user.PasswordHash)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email maps to ErrEmailTaken", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewUserRepository(sqlxDB)

		mock.ExpectExec(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		user := &models.User{Email: "test@example.com"}
		err := repo.CreateUser(ctx, user, "password123")

		assert.ErrorIs(t, err, models.ErrEmailTaken)
	})
}

func TestUserRepository_CreateShellUser(t *testing.T) {
	ctx := context.Background()

	t.Run("provisions a password-less user", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewUserRepository(sqlxDB)

		mock.ExpectExec(`INSERT INTO users`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		user, err := repo.CreateShellUser(ctx, "applicant@example.com", "tok123")

		require.NoError(t, err)
		assert.Nil(t, user.PasswordHash)
		require.NotNil(t, user.RegistrationToken)
		assert.Equal(t, "tok123", *user.RegistrationToken)
	})

	t.Run("existing account is never overwritten", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewUserRepository(sqlxDB)

		mock.ExpectExec(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		_, err := repo.CreateShellUser(ctx, "applicant@example.com", "tok123")

		assert.ErrorIs(t, err, models.ErrEmailTaken)
	})
}

func TestUserRepository_VerifyPassword(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewUserRepository(sqlxDB)

		rows := sqlmock.NewRows(userColumns()).AddRow(
			"u1", "member@example.com", "Member", models.TypeStandard, false,
			string(hash), nil, nil, nil, time.Now(),
		)
		mock.ExpectQuery(`SELECT \* FROM users WHERE LOWER\(email\) = LOWER\(\$1\)`).
			WithArgs("member@example.com").
			WillReturnRows(rows)

		user, err := repo.VerifyPassword(ctx, "member@example.com", "secret1")

		require.NoError(t, err)
		assert.Equal(t, "u1", user.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewUserRepository(sqlxDB)

		rows := sqlmock.NewRows(userColumns()).AddRow(
			"u1", "member@example.com", "Member", models.TypeStandard, false,
			string(hash), nil, nil, nil, time.Now(),
		)
		mock.ExpectQuery(`SELECT \* FROM users WHERE LOWER\(email\) = LOWER\(\$1\)`).
			WillReturnRows(rows)

		_, err := repo.VerifyPassword(ctx, "member@example.com", "wrong")

		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewUserRepository(sqlxDB)

		mock.ExpectQuery(`SELECT \* FROM users WHERE LOWER\(email\) = LOWER\(\$1\)`).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.VerifyPassword(ctx, "nobody@example.com", "secret1")

		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})

	t.Run("shell user without a password cannot log in", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewUserRepository(sqlxDB)

		rows := sqlmock.NewRows(userColumns()).AddRow(
			"u1", "shell@example.com", "", models.TypeStandard, false,
			nil, "tok123", nil, nil, time.Now(),
		)
		mock.ExpectQuery(`SELECT \* FROM users WHERE LOWER\(email\) = LOWER\(\$1\)`).
			WillReturnRows(rows)

		_, err := repo.VerifyPassword(ctx, "shell@example.com", "secret1")

		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})
}

func TestUserRepository_RedeemRegistrationToken(t *testing.T) {
	ctx := context.Background()

	t.Run("first redemption succeeds and clears the token", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewUserRepository(sqlxDB)

		hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
		rows := sqlmock.NewRows(userColumns()).AddRow(
			"u1", "applicant@example.com", "Alice", models.TypeTravelHost, false,
			string(hash), nil, nil, nil, time.Now(),
		)
		mock.ExpectQuery(`UPDATE users`).
			WillReturnRows(rows)

		user, err := repo.RedeemRegistrationToken(ctx, "tok123", "secret1", "Alice", models.TypeTravelHost)

		require.NoError(t, err)
		assert.Equal(t, "Alice", user.Name)
		assert.Nil(t, user.RegistrationToken)
	})

	t.Run("second redemption fails with ErrInvalidToken", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewUserRepository(sqlxDB)

		mock.ExpectQuery(`UPDATE users`).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.RedeemRegistrationToken(ctx, "tok123", "secret1", "Alice", models.TypeStandard)

		assert.ErrorIs(t, err, models.ErrInvalidToken)
	})
}

func TestUserRepository_ResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token resets the password once", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewUserRepository(sqlxDB)

		mock.ExpectExec(`UPDATE users`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ResetPassword(ctx, "reset-tok", "newsecret")

		assert.NoError(t, err)
	})

	t.Run("expired or unknown token fails", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewUserRepository(sqlxDB)

		mock.ExpectExec(`UPDATE users`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.ResetPassword(ctx, "stale-tok", "newsecret")

		assert.ErrorIs(t, err, models.ErrInvalidToken)
	})
}

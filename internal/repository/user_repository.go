package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/Mirap9615/owowclub-sub000/internal/models"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.UserID = uuid.New().String()
	hash := string(hashedPassword)
	user.PasswordHash = &hash
	if user.MembershipType == "" {
		user.MembershipType = models.TypeStandard
	}
	user.CreatedAt = time.Now()

	query := `
		INSERT INTO users (user_id, email, name, membership_type, is_admin, password_hash, created_at)
		VALUES (:user_id, :email, :name, :membership_type, :is_admin, :password_hash, :created_at)
	`

	_, err = r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return models.ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// CreateShellUser provisions a password-less user row for an accepted
// applicant. The registration token is the only way to claim the account.
func (r *userRepository) CreateShellUser(ctx context.Context, email, registrationToken string) (*models.User, error) {
	user := &models.User{
		UserID:            uuid.New().String(),
		Email:             email,
		MembershipType:    models.TypeStandard,
		RegistrationToken: &registrationToken,
		CreatedAt:         time.Now(),
	}

	query := `
		INSERT INTO users (user_id, email, name, membership_type, is_admin, registration_token, created_at)
		VALUES (:user_id, :email, :name, :membership_type, :is_admin, :registration_token, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return nil, models.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create shell user: %w", err)
	}

	return user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE LOWER(email) = LOWER($1)`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByRegistrationToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE registration_token = $1`

	err := r.db.GetContext(ctx, &user, query, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get user by registration token: %w", err)
	}

	return &user, nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	// a shell user has no password until registration completes
	if user.PasswordHash == nil {
		return nil, models.ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password))
	if err != nil {
		return nil, models.ErrInvalidCredentials
	}

	return user, nil
}

// RedeemRegistrationToken claims a shell account. The WHERE clause on the
// token makes the redemption single-use: a second call matches zero rows.
func (r *userRepository) RedeemRegistrationToken(ctx context.Context, token, password, name, membershipType string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	query := `
		UPDATE users
		SET password_hash = $2, name = $3, membership_type = $4, registration_token = NULL
		WHERE registration_token = $1
		RETURNING *
	`

	var user models.User
	err = r.db.GetContext(ctx, &user, query, token, string(hashedPassword), name, membershipType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to redeem registration token: %w", err)
	}

	return &user, nil
}

func (r *userRepository) SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET reset_token = $2, reset_token_expires_at = $3
		WHERE user_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, userID, token, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}

// ResetPassword clears the token and expiry in the same statement so a
// reset link cannot be replayed.
func (r *userRepository) ResetPassword(ctx context.Context, token, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	query := `
		UPDATE users
		SET password_hash = $2, reset_token = NULL, reset_token_expires_at = NULL
		WHERE reset_token = $1 AND reset_token_expires_at > CURRENT_TIMESTAMP
	`

	result, err := r.db.ExecContext(ctx, query, token, string(hashedPassword))
	if err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrInvalidToken
	}

	return nil
}

func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User

	query := `SELECT * FROM users ORDER BY name, email`

	err := r.db.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

func (r *userRepository) ListUsersByType(ctx context.Context, membershipType string) ([]models.User, error) {
	var users []models.User

	query := `SELECT * FROM users WHERE membership_type = $1 ORDER BY name, email`

	err := r.db.SelectContext(ctx, &users, query, membershipType)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by type: %w", err)
	}

	return users, nil
}

func (r *userRepository) ListAdmins(ctx context.Context) ([]models.User, error) {
	var users []models.User

	query := `SELECT * FROM users WHERE is_admin ORDER BY name, email`

	err := r.db.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}

	return users, nil
}

func (r *userRepository) ListUsersByIDs(ctx context.Context, userIDs []string) ([]models.User, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM users WHERE user_id IN (?)`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build user id query: %w", err)
	}

	var users []models.User
	err = r.db.SelectContext(ctx, &users, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by ids: %w", err)
	}

	return users, nil
}

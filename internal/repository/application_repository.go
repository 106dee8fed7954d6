package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Mirap9615/owowclub-sub000/internal/models"
)

type applicationRepository struct {
	db *sqlx.DB
}

func NewApplicationRepository(db *sqlx.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create inserts the application and, for Travel Host applicants, its
// pending property in one transaction.
func (r *applicationRepository) Create(ctx context.Context, app *models.MembershipApplication, property *models.PendingProperty) error {
	app.ApplicationID = uuid.New().String()
	app.Accepted = nil
	app.CreatedAt = time.Now()
	if app.Interests == nil {
		app.Interests = []string{}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO membership_applications
		(application_id, first_name, last_name, email, phone, reason, referral, comments, interests, membership_type, created_at)
		VALUES
		(:application_id, :first_name, :last_name, :email, :phone, :reason, :referral, :comments, :interests, :membership_type, :created_at)
	`

	_, err = tx.NamedExecContext(ctx, query, app)
	if err != nil {
		if isUniqueViolation(err, "membership_applications_email_key") {
			return models.ErrDuplicateApplication
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	if property != nil {
		property.PropertyID = uuid.New().String()
		property.ApplicationID = app.ApplicationID

		propertyQuery := `
			INSERT INTO pending_properties
			(property_id, application_id, address, property_type, description, availability)
			VALUES
			(:property_id, :application_id, :address, :property_type, :description, :availability)
		`

		_, err = tx.NamedExecContext(ctx, propertyQuery, property)
		if err != nil {
			return fmt.Errorf("failed to create pending property: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit application: %w", err)
	}

	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, applicationID string) (*models.MembershipApplication, error) {
	var app models.MembershipApplication

	query := `SELECT * FROM membership_applications WHERE application_id = $1`

	err := r.db.GetContext(ctx, &app, query, applicationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return &app, nil
}

func (r *applicationRepository) List(ctx context.Context) ([]models.MembershipApplication, error) {
	var apps []models.MembershipApplication

	query := `SELECT * FROM membership_applications ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &apps, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return apps, nil
}

// SetStatus records the terminal transition. The guard on accepted IS NULL
// keeps the transition monotonic.
func (r *applicationRepository) SetStatus(ctx context.Context, applicationID string, accepted bool) error {
	query := `
		UPDATE membership_applications
		SET accepted = $2
		WHERE application_id = $1 AND accepted IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, applicationID, accepted)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
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

func (r *applicationRepository) DeleteProperties(ctx context.Context, applicationID string) error {
	query := `DELETE FROM pending_properties WHERE application_id = $1`

	_, err := r.db.ExecContext(ctx, query, applicationID)
	if err != nil {
		return fmt.Errorf("failed to delete pending properties: %w", err)
	}

	return nil
}

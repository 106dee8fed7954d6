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

// ErrSlugTaken signals a slug unique-constraint hit; the service retries
// with the next suffix.
var ErrSlugTaken = errors.New("event slug already in use")

type eventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) EventRepository {
	return &eventRepository{db: db}
}

// Create inserts the event and its creator's participation row in one
// transaction; either both land or neither does.
func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	if event.EventID == "" {
		event.EventID = uuid.New().String()
	}
	event.CreatedAt = time.Now()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO events
		(event_id, slug, title, description, start_time, end_time, is_physical,
		 location, virtual_link, event_type, exclusivity, color, image_url, created_by, created_at)
		VALUES
		(:event_id, :slug, :title, :description, :start_time, :end_time, :is_physical,
		 :location, :virtual_link, :event_type, :exclusivity, :color, :image_url, :created_by, :created_at)
	`

	_, err = tx.NamedExecContext(ctx, query, event)
	if err != nil {
		if isUniqueViolation(err, "events_slug_key") {
			return ErrSlugTaken
		}
		return fmt.Errorf("failed to create event: %w", err)
	}

	participantQuery := `
		INSERT INTO event_users (event_id, user_id)
		VALUES ($1, $2)
	`

	_, err = tx.ExecContext(ctx, participantQuery, event.EventID, event.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to add creator as participant: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit event: %w", err)
	}

	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, eventID string) (*models.Event, error) {
	var event models.Event

	query := `SELECT * FROM events WHERE event_id = $1`

	err := r.db.GetContext(ctx, &event, query, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return &event, nil
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	var event models.Event

	query := `SELECT * FROM events WHERE slug = $1`

	err := r.db.GetContext(ctx, &event, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event by slug: %w", err)
	}

	return &event, nil
}

func (r *eventRepository) List(ctx context.Context) ([]models.Event, error) {
	var events []models.Event

	query := `SELECT * FROM events ORDER BY start_time`

	err := r.db.SelectContext(ctx, &events, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events SET
			slug = :slug,
			title = :title,
			description = :description,
			start_time = :start_time,
			end_time = :end_time,
			is_physical = :is_physical,
			location = :location,
			virtual_link = :virtual_link,
			event_type = :event_type,
			exclusivity = :exclusivity,
			color = :color,
			image_url = :image_url
		WHERE event_id = :event_id
	`

	result, err := r.db.NamedExecContext(ctx, query, event)
	if err != nil {
		if isUniqueViolation(err, "events_slug_key") {
			return ErrSlugTaken
		}
		return fmt.Errorf("failed to update event: %w", err)
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

// Delete removes the event; participation, invites and event comments go
// with it through the FK cascades.
func (r *eventRepository) Delete(ctx context.Context, eventID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM comments WHERE target_kind = $1 AND target_id = $2`,
		models.TargetEvent, eventID)
	if err != nil {
		return fmt.Errorf("failed to delete event comments: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM events WHERE event_id = $1`, eventID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit event deletion: %w", err)
	}

	return nil
}

func (r *eventRepository) GetParticipants(ctx context.Context, eventID string) ([]models.Participant, error) {
	var participants []models.Participant

	query := `
		SELECT u.user_id, u.name
		FROM event_users eu
		JOIN users u ON u.user_id = eu.user_id
		WHERE eu.event_id = $1
		ORDER BY eu.joined_at
	`

	err := r.db.SelectContext(ctx, &participants, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}

	return participants, nil
}

// Join is idempotent: joining twice leaves a single participation row.
func (r *eventRepository) Join(ctx context.Context, eventID, userID string) error {
	query := `
		INSERT INTO event_users (event_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to join event: %w", err)
	}

	return nil
}

// Leave is a no-op for a non-participant.
func (r *eventRepository) Leave(ctx context.Context, eventID, userID string) error {
	query := `DELETE FROM event_users WHERE event_id = $1 AND user_id = $2`

	_, err := r.db.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to leave event: %w", err)
	}

	return nil
}

// UpsertInvite re-invites by overwriting the token and expiry and resetting
// the status to pending.
func (r *eventRepository) UpsertInvite(ctx context.Context, invite *models.EventInvite) error {
	if invite.InviteID == "" {
		invite.InviteID = uuid.New().String()
	}
	invite.Status = models.InviteStatusPending
	invite.CreatedAt = time.Now()

	query := `
		INSERT INTO event_invites (invite_id, event_id, user_id, token, status, expires_at, created_at)
		VALUES (:invite_id, :event_id, :user_id, :token, :status, :expires_at, :created_at)
		ON CONFLICT (event_id, user_id) DO UPDATE
		SET token = EXCLUDED.token,
		    status = EXCLUDED.status,
		    expires_at = EXCLUDED.expires_at
	`

	_, err := r.db.NamedExecContext(ctx, query, invite)
	if err != nil {
		return fmt.Errorf("failed to upsert invite: %w", err)
	}

	return nil
}

func (r *eventRepository) GetInviteByToken(ctx context.Context, token string) (*models.EventInvite, error) {
	var invite models.EventInvite

	query := `SELECT * FROM event_invites WHERE token = $1`

	err := r.db.GetContext(ctx, &invite, query, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrInviteInvalid
		}
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}

	return &invite, nil
}

// AcceptInvite flips a pending invite to accepted. The status guard makes a
// second redemption match zero rows.
func (r *eventRepository) AcceptInvite(ctx context.Context, inviteID string) error {
	query := `
		UPDATE event_invites
		SET status = $2
		WHERE invite_id = $1 AND status = $3
	`

	result, err := r.db.ExecContext(ctx, query, inviteID, models.InviteStatusAccepted, models.InviteStatusPending)
	if err != nil {
		return fmt.Errorf("failed to accept invite: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrInviteInvalid
	}

	return nil
}

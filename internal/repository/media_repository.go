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

type mediaRepository struct {
	db *sqlx.DB
}

func NewMediaRepository(db *sqlx.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(ctx context.Context, media *models.Media) error {
	if media.MediaID == "" {
		media.MediaID = uuid.New().String()
	}
	if media.CreatedAt.IsZero() {
		media.CreatedAt = time.Now()
	}
	if media.Tags == nil {
		media.Tags = []string{}
	}

	query := `
		INSERT INTO media (media_id, user_id, event_id, url, title, description, tags, created_at)
		VALUES (:media_id, :user_id, :event_id, :url, :title, :description, :tags, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, media)
	if err != nil {
		return fmt.Errorf("failed to create media record: %w", err)
	}

	return nil
}

func (r *mediaRepository) GetByID(ctx context.Context, mediaID string) (*models.Media, error) {
	var media models.Media

	query := `SELECT * FROM media WHERE media_id = $1`

	err := r.db.GetContext(ctx, &media, query, mediaID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get media record: %w", err)
	}

	return &media, nil
}

func (r *mediaRepository) List(ctx context.Context, eventID, userID string) ([]models.Media, error) {
	query := `SELECT * FROM media`
	var args []interface{}

	switch {
	case eventID != "":
		query += ` WHERE event_id = $1`
		args = append(args, eventID)
	case userID != "":
		query += ` WHERE user_id = $1`
		args = append(args, userID)
	}
	query += ` ORDER BY created_at DESC`

	var items []models.Media
	err := r.db.SelectContext(ctx, &items, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}

	return items, nil
}

func (r *mediaRepository) Update(ctx context.Context, media *models.Media) error {
	query := `
		UPDATE media SET
			title = :title,
			description = :description,
			tags = :tags,
			event_id = :event_id
		WHERE media_id = :media_id
	`

	result, err := r.db.NamedExecContext(ctx, query, media)
	if err != nil {
		return fmt.Errorf("failed to update media record: %w", err)
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

func (r *mediaRepository) Delete(ctx context.Context, mediaID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM comments WHERE target_kind = $1 AND target_id = $2`,
		models.TargetImage, mediaID)
	if err != nil {
		return fmt.Errorf("failed to delete media comments: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM media WHERE media_id = $1`, mediaID)
	if err != nil {
		return fmt.Errorf("failed to delete media record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit media deletion: %w", err)
	}

	return nil
}

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

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	comment.CommentID = uuid.New().String()
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	query := `
		INSERT INTO comments (comment_id, target_kind, target_id, user_id, content, created_at, updated_at)
		VALUES (:comment_id, :target_kind, :target_id, :user_id, :content, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	var comment models.Comment

	query := `
		SELECT comment_id, target_kind, target_id, user_id, content, created_at, updated_at
		FROM comments WHERE comment_id = $1
	`

	err := r.db.GetContext(ctx, &comment, query, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return &comment, nil
}

// ListByTarget joins like counts and whether the viewer liked each comment.
func (r *commentRepository) ListByTarget(ctx context.Context, targetKind, targetID, viewerID string) ([]models.Comment, error) {
	query := `
		SELECT c.comment_id, c.target_kind, c.target_id, c.user_id, c.content,
		       c.created_at, c.updated_at,
		       u.name AS author_name,
		       COUNT(cl.user_id) AS like_count,
		       BOOL_OR(cl.user_id = $3) IS TRUE AS liked_by_me
		FROM comments c
		JOIN users u ON u.user_id = c.user_id
		LEFT JOIN comment_likes cl ON cl.comment_id = c.comment_id
		WHERE c.target_kind = $1 AND c.target_id = $2
		GROUP BY c.comment_id, u.name
		ORDER BY c.created_at
	`

	var comments []models.Comment
	err := r.db.SelectContext(ctx, &comments, query, targetKind, targetID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, commentID, content string) error {
	query := `
		UPDATE comments
		SET content = $2, updated_at = CURRENT_TIMESTAMP
		WHERE comment_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, commentID, content)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
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

func (r *commentRepository) Delete(ctx context.Context, commentID string) error {
	query := `DELETE FROM comments WHERE comment_id = $1`

	result, err := r.db.ExecContext(ctx, query, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (r *commentRepository) Like(ctx context.Context, commentID, userID string) error {
	query := `
		INSERT INTO comment_likes (comment_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (comment_id, user_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, commentID, userID)
	if err != nil {
		return fmt.Errorf("failed to like comment: %w", err)
	}

	return nil
}

func (r *commentRepository) Unlike(ctx context.Context, commentID, userID string) error {
	query := `DELETE FROM comment_likes WHERE comment_id = $1 AND user_id = $2`

	_, err := r.db.ExecContext(ctx, query, commentID, userID)
	if err != nil {
		return fmt.Errorf("failed to unlike comment: %w", err)
	}

	return nil
}

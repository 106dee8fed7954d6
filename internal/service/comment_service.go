package service

import (
	"context"

	"github.com/Mirap9615/owowclub-sub000/internal/models"
	"github.com/Mirap9615/owowclub-sub000/internal/repository"
)

type CommentService interface {
	Post(ctx context.Context, targetKind, targetID, content string, author *models.User) (*models.Comment, error)
	Edit(ctx context.Context, commentID, content string, editor *models.User) error
	Delete(ctx context.Context, commentID string, requester *models.User) error
	List(ctx context.Context, targetKind, targetID, viewerID string) ([]models.Comment, error)
	Like(ctx context.Context, commentID, userID string) error
	Unlike(ctx context.Context, commentID, userID string) error
}

type commentService struct {
	commentRepo repository.CommentRepository
}

func NewCommentService(commentRepo repository.CommentRepository) CommentService {
	return &commentService{commentRepo: commentRepo}
}

func (s *commentService) Post(ctx context.Context, targetKind, targetID, content string, author *models.User) (*models.Comment, error) {
	comment := &models.Comment{
		TargetKind: targetKind,
		TargetID:   targetID,
		UserID:     author.UserID,
		Content:    content,
		AuthorName: author.Name,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// Edit is author-only.
func (s *commentService) Edit(ctx context.Context, commentID, content string, editor *models.User) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != editor.UserID {
		return models.ErrForbidden
	}

	return s.commentRepo.Update(ctx, commentID, content)
}

// Delete is allowed for the author or an admin.
func (s *commentService) Delete(ctx context.Context, commentID string, requester *models.User) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != requester.UserID && !requester.IsAdmin {
		return models.ErrForbidden
	}

	return s.commentRepo.Delete(ctx, commentID)
}

func (s *commentService) List(ctx context.Context, targetKind, targetID, viewerID string) ([]models.Comment, error) {
	return s.commentRepo.ListByTarget(ctx, targetKind, targetID, viewerID)
}

func (s *commentService) Like(ctx context.Context, commentID, userID string) error {
	return s.commentRepo.Like(ctx, commentID, userID)
}

func (s *commentService) Unlike(ctx context.Context, commentID, userID string) error {
	return s.commentRepo.Unlike(ctx, commentID, userID)
}

package service

import (
	"context"
	"fmt"
	"io"

	"github.com/Mirap9615/owowclub-sub000/internal/models"
	"github.com/Mirap9615/owowclub-sub000/internal/repository"
	"github.com/Mirap9615/owowclub-sub000/internal/storage"
)

type UploadMediaRequest struct {
	UserID      string
	EventID     *string
	Title       string
	Description string
	Tags        []string
	FileName    string
	File        io.Reader
	Size        int64
}

type MediaService interface {
	Upload(ctx context.Context, req UploadMediaRequest) (*models.Media, error)
	List(ctx context.Context, eventID, userID string) ([]models.Media, error)
	Update(ctx context.Context, mediaID, title, description string, tags []string) (*models.Media, error)
	Delete(ctx context.Context, mediaID string) error
	BulkDelete(ctx context.Context, mediaIDs []string) error
	GetByID(ctx context.Context, mediaID string) (*models.Media, error)
}

type mediaService struct {
	mediaRepo repository.MediaRepository
	storage   storage.Storage
}

func NewMediaService(mediaRepo repository.MediaRepository, storage storage.Storage) MediaService {
	return &mediaService{
		mediaRepo: mediaRepo,
		storage:   storage,
	}
}

// Upload stores the object first; if the database insert fails the object
// is removed again so storage does not accumulate orphans.
func (s *mediaService) Upload(ctx context.Context, req UploadMediaRequest) (*models.Media, error) {
	objectName, url, err := s.storage.UploadImage(ctx, req.FileName, req.File, req.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to upload media: %w", err)
	}

	media := &models.Media{
		UserID:      req.UserID,
		EventID:     req.EventID,
		URL:         url,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	}

	if err := s.mediaRepo.Create(ctx, media); err != nil {
		s.storage.DeleteImage(ctx, objectName)
		return nil, fmt.Errorf("failed to save media record: %w", err)
	}

	return media, nil
}

func (s *mediaService) List(ctx context.Context, eventID, userID string) ([]models.Media, error) {
	return s.mediaRepo.List(ctx, eventID, userID)
}

func (s *mediaService) GetByID(ctx context.Context, mediaID string) (*models.Media, error) {
	return s.mediaRepo.GetByID(ctx, mediaID)
}

func (s *mediaService) Update(ctx context.Context, mediaID, title, description string, tags []string) (*models.Media, error) {
	media, err := s.mediaRepo.GetByID(ctx, mediaID)
	if err != nil {
		return nil, err
	}

	media.Title = title
	media.Description = description
	media.Tags = tags

	if err := s.mediaRepo.Update(ctx, media); err != nil {
		return nil, err
	}

	return media, nil
}

func (s *mediaService) Delete(ctx context.Context, mediaID string) error {
	media, err := s.mediaRepo.GetByID(ctx, mediaID)
	if err != nil {
		return err
	}

	objectName, err := s.storage.ObjectNameFromURL(media.URL)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteImage(ctx, objectName); err != nil {
		return err
	}

	return s.mediaRepo.Delete(ctx, mediaID)
}

// BulkDelete stops at the first failure; a storage error aborts the rest of
// the batch.
func (s *mediaService) BulkDelete(ctx context.Context, mediaIDs []string) error {
	for _, mediaID := range mediaIDs {
		if err := s.Delete(ctx, mediaID); err != nil {
			return fmt.Errorf("bulk delete stopped at %s: %w", mediaID, err)
		}
	}
	return nil
}

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mkramos/gamestore-backend/internal/app/model"
	"github.com/mkramos/gamestore-backend/internal/app/repository"
	"github.com/mkramos/gamestore-backend/internal/storage"
	"github.com/mkramos/gamestore-backend/pkg/logger"
)

// ImageDownloader fetches the binary content behind a remote image URL
type ImageDownloader interface {
	DownloadImage(ctx context.Context, imageURL string) ([]byte, error)
}

// MediaService downloads a remote image and attaches it to a persisted game.
// The game must already have an id; assets are never attached to unsaved
// records.
type MediaService interface {
	Upload(ctx context.Context, imageURL string, game *model.Game, field model.MediaField, position int) error
}

type mediaService struct {
	downloader ImageDownloader
	storage    storage.ObjectStorage
	mediaRepo  repository.MediaRepository
}

func NewMediaService(downloader ImageDownloader, objectStorage storage.ObjectStorage, mediaRepo repository.MediaRepository) MediaService {
	return &mediaService{
		downloader: downloader,
		storage:    objectStorage,
		mediaRepo:  mediaRepo,
	}
}

func (s *mediaService) Upload(ctx context.Context, imageURL string, game *model.Game, field model.MediaField, position int) error {
	data, err := s.downloader.DownloadImage(ctx, imageURL)
	if err != nil {
		return fmt.Errorf("download %s image for %s: %w", field, game.Slug, err)
	}

	key := fmt.Sprintf("games/%s/%s-%s.jpg", game.Slug, field, uuid.New().String())
	fileURL, err := s.storage.Put(ctx, key, "image/jpeg", data)
	if err != nil {
		return fmt.Errorf("store %s image for %s: %w", field, game.Slug, err)
	}

	asset := &model.MediaAsset{
		GameID:   game.ID,
		Field:    field,
		Position: position,
		Key:      key,
		URL:      fileURL,
	}
	if err := s.mediaRepo.Create(asset); err != nil {
		return fmt.Errorf("record %s asset for %s: %w", field, game.Slug, err)
	}

	logger.Info("Uploaded media asset", map[string]interface{}{
		"game":     game.Slug,
		"field":    field,
		"position": position,
		"key":      key,
	})
	return nil
}

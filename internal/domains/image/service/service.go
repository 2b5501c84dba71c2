package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"kiosk-backend/internal/domains/content"
	"kiosk-backend/internal/domains/image/model"
	"kiosk-backend/internal/domains/image/repository"
)

type Config struct {
	SweepBatchSize int
	StorageTimeout time.Duration
}

type imageService struct {
	repo      repository.RepositoryInterface
	storage   ObjectStorage
	processor ImageProcessor
	cfg       Config
	now       func() time.Time
}

func NewImageService(
	repo repository.RepositoryInterface,
	storage ObjectStorage,
	processor ImageProcessor,
	cfg Config,
) ServiceInterface {
	if cfg.SweepBatchSize <= 0 {
		cfg.SweepBatchSize = 100
	}
	if cfg.StorageTimeout <= 0 {
		cfg.StorageTimeout = 15 * time.Second
	}
	return &imageService{
		repo:      repo,
		storage:   storage,
		processor: processor,
		cfg:       cfg,
		now:       time.Now,
	}
}

// =====================================================
// UPLOAD
// =====================================================

// RecordUpload tracks an object that is already in storage as an orphan.
func (s *imageService) RecordUpload(ctx context.Context, ownerID uuid.UUID, req model.RecordUploadRequest) (*model.ImageResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	img := &model.Image{
		ID:      uuid.New(),
		URL:     req.URL,
		Key:     req.Key,
		OwnerID: ownerID,
	}
	if err := s.repo.Create(ctx, img); err != nil {
		return nil, err
	}

	log.Info().
		Str("image_id", img.ID.String()).
		Str("key", img.Key).
		Str("owner_id", ownerID.String()).
		Msg("image recorded as orphan")

	return img.ToResponse(), nil
}

// Upload normalises data, stores it and records it. The stored object is
// removed again if the record cannot be written.
func (s *imageService) Upload(ctx context.Context, ownerID uuid.UUID, data []byte) (*model.ImageResponse, error) {
	processed, err := s.processor.Process(data)
	if err != nil {
		return nil, model.NewInvalidImageError(err)
	}

	key := fmt.Sprintf("images/%s/%s.%s", ownerID, uuid.New(), processed.Extension)

	storageCtx, cancel := context.WithTimeout(ctx, s.cfg.StorageTimeout)
	url, err := s.storage.Upload(storageCtx, key, processed.Data, processed.ContentType)
	cancel()
	if err != nil {
		return nil, model.NewStorageError("upload", err)
	}

	res, err := s.RecordUpload(ctx, ownerID, model.RecordUploadRequest{URL: url, Key: key})
	if err != nil {
		cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.StorageTimeout)
		defer cancel()
		if delErr := s.storage.Delete(cleanupCtx, key); delErr != nil {
			log.Error().Err(delErr).Str("key", key).Msg("failed to remove object after record failure")
		}
		return nil, err
	}
	return res, nil
}

// =====================================================
// LINKING
// =====================================================

func (s *imageService) ExtractReferencedURLs(root *content.Node) []string {
	return content.ExtractImageURLs(root)
}

// LinkToArticle attaches the owner's orphan images with a URL in urls.
// Run it inside the publish transaction.
func (s *imageService) LinkToArticle(ctx context.Context, urls []string, ownerID, articleID uuid.UUID) (int64, error) {
	if len(urls) == 0 {
		return 0, nil
	}
	linked, err := s.repo.LinkOrphans(ctx, ownerID, articleID, urls)
	if err != nil {
		return 0, err
	}

	log.Debug().
		Str("article_id", articleID.String()).
		Int("referenced", len(urls)).
		Int64("linked", linked).
		Msg("linked orphan images")
	return linked, nil
}

// =====================================================
// DELETION
// =====================================================

// DeleteOwned removes an orphan image owned by requesterID. Storage goes
// first; the record is only dropped once storage confirmed the delete.
func (s *imageService) DeleteOwned(ctx context.Context, key string, requesterID uuid.UUID) error {
	if key == "" {
		return model.NewInvalidInputError(errors.New("key is required"))
	}

	img, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		return err
	}
	if img.OwnerID != requesterID {
		return model.ErrNotOwner
	}
	if !img.IsOrphan() {
		return model.ErrAlreadyLinked
	}

	storageCtx, cancel := context.WithTimeout(ctx, s.cfg.StorageTimeout)
	defer cancel()
	if err := s.storage.Delete(storageCtx, key); err != nil {
		return model.NewStorageError("delete", err)
	}

	if err := s.repo.DeleteByKey(ctx, key); err != nil {
		return err
	}

	log.Info().Str("key", key).Str("owner_id", requesterID.String()).Msg("image deleted by owner")
	return nil
}

// SweepOrphans deletes orphans older than retention in batches. A batch
// whose storage delete is not fully confirmed removes no records and
// stops the sweep; earlier batches stay deleted.
func (s *imageService) SweepOrphans(ctx context.Context, retention time.Duration) (*model.SweepResult, error) {
	if retention < 0 {
		return nil, model.NewInvalidInputError(errors.New("retention must not be negative"))
	}

	cutoff := model.SweepCutoff(s.now(), retention)
	result := &model.SweepResult{}

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		batch, err := s.repo.ListStaleOrphans(ctx, cutoff, s.cfg.SweepBatchSize)
		if err != nil {
			return result, err
		}
		if len(batch) == 0 {
			break
		}
		result.Batches++
		result.Scanned += len(batch)

		deleted, err := s.sweepBatch(ctx, batch)
		result.Deleted += deleted
		if err != nil {
			log.Error().
				Err(err).
				Int("batch", result.Batches).
				Int64("deleted_so_far", result.Deleted).
				Msg("orphan sweep aborted")
			return result, err
		}

		// nothing removable left in this window
		if deleted == 0 || len(batch) < s.cfg.SweepBatchSize {
			break
		}
	}

	log.Info().
		Int("scanned", result.Scanned).
		Int64("deleted", result.Deleted).
		Int("batches", result.Batches).
		Dur("retention", retention).
		Msg("orphan sweep finished")

	return result, nil
}

func (s *imageService) sweepBatch(ctx context.Context, batch []*model.Image) (int64, error) {
	keys := make([]string, len(batch))
	for i, img := range batch {
		keys[i] = img.Key
	}

	storageCtx, cancel := context.WithTimeout(ctx, s.cfg.StorageTimeout)
	results, err := s.storage.RemoveObjects(storageCtx, keys)
	cancel()
	if err != nil {
		return 0, model.NewStorageError("batch delete", err)
	}

	var failed int
	var firstErr error
	for _, key := range keys {
		keyErr, reported := results[key]
		if !reported || keyErr != nil {
			failed++
			if firstErr == nil {
				if keyErr == nil {
					keyErr = fmt.Errorf("no result for %s", key)
				}
				firstErr = keyErr
			}
		}
	}
	if failed > 0 {
		return 0, model.NewSweepIncompleteError(failed, len(keys), firstErr)
	}

	return s.repo.DeleteOrphansByKeys(ctx, keys)
}

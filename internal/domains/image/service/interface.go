package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"kiosk-backend/internal/domains/content"
	"kiosk-backend/internal/domains/image/model"
	"kiosk-backend/internal/infrastructure/storage"
)

// ServiceInterface is the image lifecycle tracker.
type ServiceInterface interface {
	RecordUpload(ctx context.Context, ownerID uuid.UUID, req model.RecordUploadRequest) (*model.ImageResponse, error)
	Upload(ctx context.Context, ownerID uuid.UUID, data []byte) (*model.ImageResponse, error)
	ExtractReferencedURLs(root *content.Node) []string
	LinkToArticle(ctx context.Context, urls []string, ownerID, articleID uuid.UUID) (int64, error)
	DeleteOwned(ctx context.Context, key string, requesterID uuid.UUID) error
	SweepOrphans(ctx context.Context, retention time.Duration) (*model.SweepResult, error)
}

// ObjectStorage is the object storage collaborator.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	// RemoveObjects reports a nil error per key that was confirmed deleted.
	RemoveObjects(ctx context.Context, keys []string) (map[string]error, error)
}

type ImageProcessor interface {
	Process(data []byte) (*storage.ProcessedImage, error)
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"kiosk-backend/internal/domains/image/model"
)

// RepositoryInterface defines image record persistence. Every method joins
// the transaction carried by ctx, if any.
type RepositoryInterface interface {
	// Create fails with model.ErrDuplicateKey when the key exists.
	Create(ctx context.Context, img *model.Image) error
	FindByKey(ctx context.Context, key string) (*model.Image, error)
	DeleteByKey(ctx context.Context, key string) error

	// LinkOrphans sets article_id on the owner's orphan images whose URL is
	// in urls. Linked images are never touched.
	LinkOrphans(ctx context.Context, ownerID, articleID uuid.UUID, urls []string) (int64, error)

	// ListStaleOrphans returns up to limit orphans created before cutoff,
	// oldest first.
	ListStaleOrphans(ctx context.Context, cutoff time.Time, limit int) ([]*model.Image, error)

	// DeleteOrphansByKeys removes records for keys that are still orphan.
	DeleteOrphansByKeys(ctx context.Context, keys []string) (int64, error)
}

package repository

import (
	"context"

	"github.com/google/uuid"

	"kiosk-backend/internal/domains/purchase/model"
)

type RepositoryInterface interface {
	// Create fails with ErrAlreadyPurchased for a repeated (user, article).
	Create(ctx context.Context, p *model.Purchase) error
	Exists(ctx context.Context, userID, articleID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.PurchaseRecord, error)
	// ListSalesByAuthor returns purchases of articles written by authorID.
	ListSalesByAuthor(ctx context.Context, authorID uuid.UUID) ([]*model.PurchaseRecord, error)
}

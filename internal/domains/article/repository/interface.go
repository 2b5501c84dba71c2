package repository

import (
	"context"

	"github.com/google/uuid"

	"kiosk-backend/internal/domains/article/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, a *model.Article) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Article, error)
	// List is newest first and returns the unpaged total.
	List(ctx context.Context, filter model.ListFilter) ([]*model.Article, int, error)
}

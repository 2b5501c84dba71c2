package service

import (
	"context"

	"github.com/google/uuid"

	"kiosk-backend/internal/domains/article/model"
	journalModel "kiosk-backend/internal/domains/journal/model"
	"kiosk-backend/internal/domains/user"
)

type ServiceInterface interface {
	Publish(ctx context.Context, authorID uuid.UUID, req model.PublishRequest) (*model.ArticleResponse, error)
	// GetForViewer accepts a nil viewer for anonymous reads.
	GetForViewer(ctx context.Context, articleID uuid.UUID, viewerID *uuid.UUID) (*model.ArticleView, error)
	List(ctx context.Context, filter model.ListFilter) ([]*model.ArticleSummary, int, error)
	JournalFeed(ctx context.Context, slug string) (string, error)
}

// JournalReader is satisfied by the journal repository.
type JournalReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*journalModel.Journal, error)
	FindBySlug(ctx context.Context, slug string) (*journalModel.Journal, error)
	FindMember(ctx context.Context, journalID, userID uuid.UUID) (*journalModel.Member, error)
}

// ImageLinker attaches the author's orphan images to a new article.
type ImageLinker interface {
	LinkToArticle(ctx context.Context, urls []string, ownerID, articleID uuid.UUID) (int64, error)
}

type PurchaseChecker interface {
	HasPurchased(ctx context.Context, userID, articleID uuid.UUID) (bool, error)
}

type UserReader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*user.User, error)
}

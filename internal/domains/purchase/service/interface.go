package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	articleModel "kiosk-backend/internal/domains/article/model"
	"kiosk-backend/internal/domains/purchase/model"
)

type ServiceInterface interface {
	// RecordPurchase is the ledger write. A second purchase of the same
	// article by the same user is rejected.
	RecordPurchase(ctx context.Context, userID, articleID uuid.UUID, amountPaid decimal.Decimal) (*model.PurchaseResponse, error)
	// PurchaseArticle records the article's current price.
	PurchaseArticle(ctx context.Context, userID, articleID uuid.UUID) (*model.PurchaseResponse, error)
	HasPurchased(ctx context.Context, userID, articleID uuid.UUID) (bool, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.PurchaseResponse, error)
	ExportSales(ctx context.Context, authorID uuid.UUID) ([]byte, error)
}

type ArticleReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*articleModel.Article, error)
}

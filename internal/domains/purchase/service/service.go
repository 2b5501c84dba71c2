package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"kiosk-backend/internal/domains/purchase/model"
	"kiosk-backend/internal/domains/purchase/repository"
)

type purchaseService struct {
	repo     repository.RepositoryInterface
	articles ArticleReader
}

func NewPurchaseService(repo repository.RepositoryInterface, articles ArticleReader) ServiceInterface {
	return &purchaseService{repo: repo, articles: articles}
}

func (s *purchaseService) RecordPurchase(
	ctx context.Context,
	userID, articleID uuid.UUID,
	amountPaid decimal.Decimal,
) (*model.PurchaseResponse, error) {
	if !amountPaid.IsPositive() {
		return nil, model.ErrInvalidAmount
	}

	exists, err := s.repo.Exists(ctx, userID, articleID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrAlreadyPurchased
	}

	p := &model.Purchase{
		ID:         uuid.New(),
		UserID:     userID,
		ArticleID:  articleID,
		AmountPaid: amountPaid.Round(2),
	}
	// unique (user_id, article_id) still catches a concurrent duplicate
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	log.Info().
		Str("purchase_id", p.ID.String()).
		Str("user_id", userID.String()).
		Str("article_id", articleID.String()).
		Str("amount", p.AmountPaid.StringFixed(2)).
		Msg("purchase recorded")

	return p.ToResponse(), nil
}

func (s *purchaseService) PurchaseArticle(ctx context.Context, userID, articleID uuid.UUID) (*model.PurchaseResponse, error) {
	article, err := s.articles.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article.IsFree() {
		return nil, model.ErrFreeArticle
	}
	if article.AuthorID == userID {
		return nil, model.ErrOwnArticle
	}

	res, err := s.RecordPurchase(ctx, userID, articleID, decimal.NewFromInt(int64(*article.Price)))
	if err != nil {
		return nil, err
	}
	res.ArticleTitle = article.Title
	return res, nil
}

func (s *purchaseService) HasPurchased(ctx context.Context, userID, articleID uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, userID, articleID)
}

func (s *purchaseService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.PurchaseResponse, error) {
	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]*model.PurchaseResponse, 0, len(records))
	for _, rec := range records {
		res = append(res, rec.ToResponse())
	}
	return res, nil
}

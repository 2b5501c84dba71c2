package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase grants UserID permanent access to ArticleID. AmountPaid is what
// was charged at the time and never follows later price changes.
type Purchase struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	ArticleID  uuid.UUID
	AmountPaid decimal.Decimal
	CreatedAt  time.Time
}

// PurchaseRecord is a purchase joined with its article title.
type PurchaseRecord struct {
	Purchase
	ArticleTitle string
}

type PurchaseResponse struct {
	ID           uuid.UUID       `json:"id"`
	ArticleID    uuid.UUID       `json:"article_id"`
	ArticleTitle string          `json:"article_title,omitempty"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (p *Purchase) ToResponse() *PurchaseResponse {
	return &PurchaseResponse{
		ID:         p.ID,
		ArticleID:  p.ArticleID,
		AmountPaid: p.AmountPaid,
		CreatedAt:  p.CreatedAt,
	}
}

func (r *PurchaseRecord) ToResponse() *PurchaseResponse {
	res := r.Purchase.ToResponse()
	res.ArticleTitle = r.ArticleTitle
	return res
}
